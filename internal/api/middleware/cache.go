package middleware

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/patrickmn/go-cache"
)

type cachedResponse struct {
	status  int
	headers http.Header
	body    []byte
}

type bodyCacheWriter struct {
	http.ResponseWriter
	status int
	body   *bytes.Buffer
}

func (w *bodyCacheWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyCacheWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Cache кеширует успешные GET ответы на duration. Ключ - URI запроса.
func Cache(store *cache.Cache, duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := r.URL.RequestURI()
			if resp, found := store.Get(key); found {
				cached := resp.(cachedResponse)
				for k, v := range cached.headers {
					w.Header()[k] = v
				}
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(cached.status)
				_, _ = w.Write(cached.body)
				return
			}

			bcw := &bodyCacheWriter{ResponseWriter: w, status: http.StatusOK, body: bytes.NewBuffer(nil)}
			next.ServeHTTP(bcw, r)

			if bcw.status >= 200 && bcw.status < 300 {
				headers := bcw.Header().Clone()
				headers.Del(HeaderRequestID)
				store.Set(key, cachedResponse{
					status:  bcw.status,
					headers: headers,
					body:    bcw.body.Bytes(),
				}, duration)
			}
		})
	}
}

// InvalidateCache сбрасывает закешированные ответы после успешной записи.
// Если в пути есть {stylistId}, удаляются только ключи этого мастера
// вида /stylists/{id}/<resource>, иначе кеш очищается целиком.
func InvalidateCache(store *cache.Cache, resource string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			wrapped := newStatusWriter(w)
			next.ServeHTTP(wrapped, r)

			if wrapped.status < 200 || wrapped.status >= 300 {
				return
			}

			stylistID, ok := mux.Vars(r)["stylistId"]
			if !ok {
				store.Flush()
				return
			}

			marker := "/stylists/" + stylistID + "/" + resource
			for key := range store.Items() {
				if strings.Contains(key, marker) {
					store.Delete(key)
				}
			}
		})
	}
}
