package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":1,"code":"TC001","category":"Tortas Cuadradas","name":"Torta Cuadrada de Chocolate","price":"45000","image":"tc001.jpg","on_sale":false},
			{"id":5,"code":"PI001","category":"Postres Individuales","name":"Mousse de Chocolate","price":"5000","image":"pi001.jpg","on_sale":true}
		]`))
	}))
	defer srv.Close()

	ps, err := New(srv.URL).FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "TC001", ps[0].Code)
	assert.True(t, ps[0].Price.Equal(decimal.NewFromInt(45000)))
	assert.True(t, ps[1].OnSale)
}

func TestFetchProductsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).FetchProducts(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
}

func TestLogin(t *testing.T) {
	t.Run("success returns token and role", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/login", r.URL.Path)
			var creds map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			assert.Equal(t, "amelia@duocuc.cl", creds["username"])
			_, _ = w.Write([]byte(`{"token":"abc123","role":"cliente"}`))
		}))
		defer srv.Close()

		res, err := New(srv.URL).Login(context.Background(), "amelia@duocuc.cl", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, "abc123", res.Token)
		assert.Equal(t, "cliente", res.Role)
	})

	t.Run("rejection surfaces the server message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"credenciales inválidas"}`))
		}))
		defer srv.Close()

		_, err := New(srv.URL).Login(context.Background(), "amelia@duocuc.cl", "wrong")
		require.Error(t, err)
		assert.Equal(t, "credenciales inválidas", err.Error())
	})
}

func TestRegister(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/register", r.URL.Path)
			var reg Registration
			require.NoError(t, json.NewDecoder(r.Body).Decode(&reg))
			assert.Equal(t, "Amelia", reg.Names)
			w.WriteHeader(http.StatusCreated)
		}))
		defer srv.Close()

		err := New(srv.URL).Register(context.Background(), Registration{
			Username: "amelia@duocuc.cl", Password: "hunter22", Names: "Amelia",
		})
		require.NoError(t, err)
	})

	t.Run("duplicate surfaces the server message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"error":"el correo ya está registrado"}`))
		}))
		defer srv.Close()

		err := New(srv.URL).Register(context.Background(), Registration{Username: "amelia@duocuc.cl"})
		require.EqualError(t, err, "el correo ya está registrado")
	})
}
