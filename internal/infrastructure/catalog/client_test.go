package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanProduct_Success(t *testing.T) {
	var got ScanRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/scanproduct", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error":false,"status":200,"results":[{"name_product":"Produk Contoh","code_barcode_lama":1234567890123,"harga_awal":10000}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL + "/", Timeout: 5 * time.Second})
	res, err := c.ScanProduct(context.Background(), ScanRequest{Code: "1234567890123", Outlet: "SZ01", Discount: "10"})
	require.NoError(t, err)

	assert.Equal(t, ScanRequest{Code: "1234567890123", Outlet: "SZ01", Discount: "10"}, got)
	assert.True(t, res.OK)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Empty(t, res.ErrorMessage)
	require.NotNil(t, res.Product)
	assert.Equal(t, "Produk Contoh", res.Product["name_product"])
	assert.Equal(t, json.Number("1234567890123"), res.Product["code_barcode_lama"])
}

func TestScanProduct_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
		product bool
	}{
		{"backend error with msg", 200, `{"error":true,"msg":"Barang tidak ditemukan"}`, "Barang tidak ditemukan", false},
		{"backend error with message", 200, `{"error":true,"message":"Outlet salah"}`, "Outlet salah", false},
		{"error flag missing", 200, `{"results":[{"name":"x"}]}`, "Gagal mengambil data produk (status 200).", true},
		{"http failure with payload", 500, `{"error":false,"results":[]}`, "Gagal mengambil data produk (status 500).", false},
		{"not json", 502, `Bad Gateway`, "Gagal mengambil data produk (status 502).", false},
		{"empty body", 404, ``, "Gagal mengambil data produk (status 404).", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			res, err := NewClient(Config{BaseURL: srv.URL}).ScanProduct(context.Background(), ScanRequest{Code: "1"})
			require.NoError(t, err)
			assert.False(t, res.OK)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.message, res.ErrorMessage)
			assert.Equal(t, tt.product, res.Product != nil)
		})
	}
}

func TestScanProduct_RawTextKept(t *testing.T) {
	res := parseScanResponse(502, []byte("Bad Gateway"))
	assert.Equal(t, "Bad Gateway", res.Raw)
}

func TestScanProduct_FirstResultMustBeObject(t *testing.T) {
	res := parseScanResponse(200, []byte(`{"error":false,"results":[["nested"]]}`))
	assert.True(t, res.OK)
	assert.Nil(t, res.Product)
}

func TestScanProduct_StaticToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"error":false,"results":[{}]}`))
	}))
	defer srv.Close()

	res, err := NewClient(Config{BaseURL: srv.URL, Token: "secret-token"}).ScanProduct(context.Background(), ScanRequest{Code: "1"})
	require.NoError(t, err)
	assert.True(t, res.OK)
}

func TestScanProduct_ClientCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.Form.Get("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"issued","token_type":"bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/scanproduct", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer issued", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"error":false,"results":[{"name":"x"}]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(Config{
		BaseURL:      srv.URL,
		ClientID:     "label-service",
		ClientSecret: "s3cret",
		TokenURL:     srv.URL + "/oauth/token",
	})
	res, err := c.ScanProduct(context.Background(), ScanRequest{Code: "1"})
	require.NoError(t, err)
	assert.True(t, res.OK)
}

func TestScanProduct_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(Config{BaseURL: url, Timeout: time.Second}).ScanProduct(context.Background(), ScanRequest{Code: "1"})
	assert.Error(t, err)

	_, err = NewClient(Config{}).ScanProduct(context.Background(), ScanRequest{Code: "1"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
