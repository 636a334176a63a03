package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/wingscafe/inventory_client/internal/apiclient"
	"github.com/wingscafe/inventory_client/internal/inflight"
	"github.com/wingscafe/inventory_client/internal/localstore"
	"github.com/wingscafe/inventory_client/internal/session"
	"github.com/wingscafe/inventory_client/internal/web"
)

// fakeAPI stands in for the external inventory REST API. It keeps products
// and users in memory, records every call and can be told to fail specific
// ones.
type fakeAPI struct {
	mu       sync.Mutex
	nextID   int
	products []apiclient.Product
	users    []apiclient.ManagedUser
	fail     map[string]bool
	notFound bool
	calls    []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{nextID: 1, fail: map[string]bool{}}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := r.Method + " " + r.URL.Path
	f.calls = append(f.calls, key)

	w.Header().Set("Content-Type", "application/json")
	if f.fail[key] {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"boom"}`))
		return
	}
	if f.notFound {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch {
	case key == "GET /api/products":
		json.NewEncoder(w).Encode(f.products)

	case key == "POST /api/products":
		r.ParseMultipartForm(10 << 20)
		price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
		quantity, _ := strconv.Atoi(r.FormValue("quantity"))
		p := apiclient.Product{
			ProductID:    f.nextID,
			Name:         r.FormValue("name"),
			Description:  r.FormValue("description"),
			CategoryName: r.FormValue("category_name"),
			Price:        apiclient.Price(price),
			Quantity:     quantity,
		}
		if file, header, err := r.FormFile("image"); err == nil {
			file.Close()
			p.Image = "/static/images/" + header.Filename
		}
		f.nextID++
		f.products = append(f.products, p)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(p)

	case strings.HasPrefix(r.URL.Path, "/api/products/"):
		id, _ := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/api/products/"))
		switch r.Method {
		case http.MethodPut:
			var p apiclient.Product
			json.NewDecoder(r.Body).Decode(&p)
			for i := range f.products {
				if f.products[i].ProductID == id {
					p.ProductID = id
					f.products[i] = p
				}
			}
			json.NewEncoder(w).Encode(p)
		case http.MethodPatch:
			var body struct {
				Quantity int `json:"quantity"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			for i := range f.products {
				if f.products[i].ProductID == id {
					f.products[i].Quantity = body.Quantity
				}
			}
			w.WriteHeader(http.StatusOK)
		case http.MethodDelete:
			kept := f.products[:0]
			for _, p := range f.products {
				if p.ProductID != id {
					kept = append(kept, p)
				}
			}
			f.products = kept
			w.WriteHeader(http.StatusNoContent)
		}

	case key == "GET /api/users":
		json.NewEncoder(w).Encode(f.users)

	case strings.HasPrefix(r.URL.Path, "/api/users/"):
		id, _ := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/api/users/"))
		switch r.Method {
		case http.MethodPut:
			var body struct {
				Username string `json:"username"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			for i := range f.users {
				if f.users[i].ID == id {
					f.users[i].Username = body.Username
				}
			}
			w.WriteHeader(http.StatusOK)
		case http.MethodDelete:
			kept := f.users[:0]
			for _, u := range f.users {
				if u.ID != id {
					kept = append(kept, u)
				}
			}
			f.users = kept
			w.WriteHeader(http.StatusNoContent)
		}

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeAPI) product(id int) *apiclient.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.products {
		if f.products[i].ProductID == id {
			p := f.products[i]
			return &p
		}
	}
	return nil
}

func (f *fakeAPI) countCalls(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

type testEnv struct {
	T         *testing.T
	E         *echo.Echo
	API       *fakeAPI
	Store     *localstore.Store
	Sessions  *session.Store
	Auth      *AuthHandler
	Dashboard *DashboardHandler
	Products  *ProductHandler
	Users     *UserHandler
	Chart     *ChartHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := localstore.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	sessions, err := session.New(store)
	require.NoError(t, err)

	fake := newFakeAPI()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	api := apiclient.New(srv.URL)
	guard := inflight.New()

	renderer, err := web.NewRenderer()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer

	return &testEnv{
		T:         t,
		E:         e,
		API:       fake,
		Store:     store,
		Sessions:  sessions,
		Auth:      &AuthHandler{Sessions: sessions},
		Dashboard: &DashboardHandler{API: api, Store: store, Sessions: sessions, APIBase: srv.URL},
		Products:  &ProductHandler{API: api, Store: store, Sessions: sessions, Guard: guard, APIBase: srv.URL},
		Users:     &UserHandler{API: api, Sessions: sessions},
		Chart:     &ChartHandler{API: api, Sessions: sessions},
	}
}

func (env *testEnv) doGet(path string) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

func (env *testEnv) doForm(method, path string, form url.Values) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

func (env *testEnv) doMultipart(path string, fields map[string]string, fileName, fileContent string) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(env.T, w.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := w.CreateFormFile("image", fileName)
		require.NoError(env.T, err)
		_, err = fw.Write([]byte(fileContent))
		require.NoError(env.T, err)
	}
	require.NoError(env.T, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

// requireRedirect asserts a see-other to path carrying the given notice.
func requireRedirect(t *testing.T, rec *httptest.ResponseRecorder, path, kind, msg string) {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, rec.Code)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, path, loc.Path)
	if kind != "" {
		require.Equal(t, msg, loc.Query().Get(kind))
	}
}
