package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/partquote/internal/checkout"
)

type addressesResponse struct {
	Success   bool                    `json:"success"`
	Addresses []checkout.SavedAddress `json:"addresses"`
}

type addressResponse struct {
	Success bool                  `json:"success"`
	Address checkout.SavedAddress `json:"address"`
}

func (s *server) handleAddressesList(w http.ResponseWriter, r *http.Request) {
	kind := checkout.AddressKind(r.URL.Query().Get("type"))
	list, err := s.store.ListAddresses(r.Context(), kind)
	if err != nil {
		s.fail(w, r, err, "failed to fetch addresses")
		return
	}
	writeJSON(w, http.StatusOK, addressesResponse{Success: true, Addresses: list})
}

func (s *server) handleAddressCreate(w http.ResponseWriter, r *http.Request) {
	var a checkout.SavedAddress
	if err := decodeJSON(r, &a); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := s.store.CreateAddress(r.Context(), a)
	if err != nil {
		s.fail(w, r, err, "failed to create address")
		return
	}
	writeJSON(w, http.StatusCreated, addressResponse{Success: true, Address: created})
}

func (s *server) handleAddressUpdate(w http.ResponseWriter, r *http.Request) {
	var a checkout.SavedAddress
	if err := decodeJSON(r, &a); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := s.store.UpdateAddress(r.Context(), chi.URLParam(r, "id"), a)
	if err != nil {
		s.fail(w, r, err, "failed to update address")
		return
	}
	writeJSON(w, http.StatusOK, addressResponse{Success: true, Address: updated})
}

func (s *server) handleAddressDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteAddress(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err, "failed to delete address")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Address deleted successfully"})
}
