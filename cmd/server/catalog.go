package main

import (
	"net/http"

	"github.com/Simplici0/partquote/internal/catalog"
	"github.com/Simplici0/partquote/internal/parts"
	"github.com/Simplici0/partquote/internal/quote"
)

type stepInfo struct {
	Index int    `json:"index"`
	Key   string `json:"key"`
	Title string `json:"title"`
}

type catalogResponse struct {
	BasePrice        float64                                 `json:"basePrice"`
	TaxRate          float64                                 `json:"taxRate"`
	ShippingEstimate float64                                 `json:"shippingEstimate"`
	MinQuantity      int                                     `json:"minQuantity"`
	MaxQuantity      int                                     `json:"maxQuantity"`
	Steps            []stepInfo                              `json:"steps"`
	Processes        []catalog.Option[catalog.Process]       `json:"processes"`
	Materials        []catalog.MaterialOption                `json:"materials"`
	SurfaceFinishes  []catalog.Option[catalog.SurfaceFinish] `json:"surfaceFinishes"`
	Coatings         []catalog.Option[catalog.Coating]       `json:"coatings"`
	LeadTimes        []catalog.LeadTimeOption                `json:"leadTimes"`
}

func (s *server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	steps := make([]stepInfo, 0, int(parts.LastStep)+1)
	for st := parts.FirstStep; st <= parts.LastStep; st++ {
		steps = append(steps, stepInfo{Index: int(st), Key: st.String(), Title: st.Title()})
	}

	materials := catalog.MaterialsInFamily(catalog.MaterialFamily(r.URL.Query().Get("family")))

	writeJSON(w, http.StatusOK, catalogResponse{
		BasePrice:        catalog.BasePrice,
		TaxRate:          quote.TaxRate,
		ShippingEstimate: quote.ShippingEstimate,
		MinQuantity:      parts.MinQuantity,
		MaxQuantity:      parts.MaxQuantity,
		Steps:            steps,
		Processes:        catalog.Processes(),
		Materials:        materials,
		SurfaceFinishes:  catalog.SurfaceFinishes(),
		Coatings:         catalog.Coatings(),
		LeadTimes:        catalog.LeadTimes(),
	})
}
