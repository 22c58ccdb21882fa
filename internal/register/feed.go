// Package register ingests the business registry open data feed and serves
// company snapshots from the local cache.
package register

import (
	"encoding/json"
	"strings"

	"github.com/nordlink/regsync/internal/model"
)

// feedCompany mirrors one element of the registry's general data JSON feed.
// Only the fields the sync pipeline consumes are declared; the decoder
// drops the rest.
type feedCompany struct {
	Regcode json.Number `json:"ariregistri_kood"`
	Name    string      `json:"nimi"`
	General feedGeneral `json:"yldandmed"`
}

type feedGeneral struct {
	Comms      []feedComm     `json:"sidevahendid"`
	Addresses  []feedAddress  `json:"aadressid"`
	Activities []feedActivity `json:"teatatud_tegevusalad"`
}

type feedComm struct {
	Kind  string `json:"liik"`
	Value string `json:"sisu"`
}

type feedAddress struct {
	Full string `json:"aadress_ads__ads_normaliseeritud_taisaadress"`
}

type feedActivity struct {
	Code    string `json:"emtak_kood"`
	Text    string `json:"emtak_tekstina"`
	Primary bool   `json:"on_pohitegevusala"`
}

// toCompany converts a raw feed element into the domain snapshot. Feed
// order of communication channels and addresses is preserved.
func (fc *feedCompany) toCompany() model.Company {
	c := model.Company{
		Regcode: strings.TrimSpace(fc.Regcode.String()),
		Name:    fc.Name,
	}

	for _, comm := range fc.General.Comms {
		c.Comms = append(c.Comms, model.CommItem{
			Kind:  model.CommKind(comm.Kind),
			Value: comm.Value,
		})
	}
	for _, addr := range fc.General.Addresses {
		c.Addresses = append(c.Addresses, model.Address{Full: addr.Full})
	}
	for _, act := range fc.General.Activities {
		c.Activities = append(c.Activities, model.Activity{
			Code:    act.Code,
			Text:    act.Text,
			Primary: act.Primary,
		})
	}
	return c
}
