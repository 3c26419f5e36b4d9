package models

import (
	"time"

	"github.com/omarshaarawi/gmsim/internal/league"
)

type AssetKind string

const (
	AssetPlayer    AssetKind = "player"
	AssetProspect  AssetKind = "prospect"
	AssetDraftPick AssetKind = "draft_pick"
)

type Asset struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Kind     AssetKind `json:"kind"`
	Position string    `json:"position,omitempty"`
	Value    float64   `json:"value"`
	Age      int       `json:"age,omitempty"`
}

type Trade struct {
	ID         string       `json:"id"`
	SessionID  string       `json:"sessionId"`
	Sport      league.Sport `json:"sport"`
	TeamKey    string       `json:"teamKey"`
	PartnerKey string       `json:"partnerKey,omitempty"`
	Given      []Asset      `json:"given"`
	Received   []Asset      `json:"received"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// Clone returns a deep copy so callers can perturb asset values freely.
func (t Trade) Clone() Trade {
	t.Given = append([]Asset(nil), t.Given...)
	t.Received = append([]Asset(nil), t.Received...)
	return t
}

// FindAsset locates an asset by id on either side.
func (t Trade) FindAsset(id string) (side string, index int, ok bool) {
	for i, a := range t.Received {
		if a.ID == id {
			return "received", i, true
		}
	}
	for i, a := range t.Given {
		if a.ID == id {
			return "given", i, true
		}
	}
	return "", 0, false
}
