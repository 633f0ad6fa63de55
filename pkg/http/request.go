package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// IntVar читает положительный целочисленный параметр пути
func IntVar(r *http.Request, name string) (int, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, fmt.Errorf("missing path parameter %q", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid path parameter %q: %q", name, raw)
	}
	return v, nil
}
