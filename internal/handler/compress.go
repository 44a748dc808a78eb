package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
)

type brotliResponseWriter struct {
	http.ResponseWriter
	bw io.Writer
}

func (w *brotliResponseWriter) Write(p []byte) (int, error) {
	return w.bw.Write(p)
}

// Compress brotli-encodes responses for clients that advertise br support.
func Compress(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "br") {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Content-Encoding", "br")
		w.Header().Add("Vary", "Accept-Encoding")

		bw := brotli.NewWriter(w)
		defer bw.Close()

		next.ServeHTTP(&brotliResponseWriter{ResponseWriter: w, bw: bw}, r)
	})
}
