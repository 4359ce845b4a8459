package fakeapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// ResourceHandler serves list, get, create, update and delete for every
// table of the store. It holds no business rules.
type ResourceHandler struct {
	store *Store
}

func NewResourceHandler(store *Store) *ResourceHandler {
	return &ResourceHandler{store: store}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError maps store errors to statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrRecordNotFound), errors.Is(err, ErrUnknownResource):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeRecord converts a record into a typed model through JSON.
func decodeRecord(r Record, out any) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func routeID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil && id > 0
}

func readBody(w http.ResponseWriter, r *http.Request) (Record, bool) {
	var rec Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil || rec == nil {
		writeError(w, http.StatusBadRequest, "body must be a JSON object")
		return nil, false
	}
	return rec, true
}

func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	recs, err := h.store.List(mux.Vars(r)["resource"], r.URL.Query())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := routeID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	rec, err := h.store.Get(mux.Vars(r)["resource"], id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	delete(body, "id")
	rec, err := h.store.Create(mux.Vars(r)["resource"], body)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := routeID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	rec, err := h.store.Update(mux.Vars(r)["resource"], id, body)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := routeID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.store.Delete(mux.Vars(r)["resource"], id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
