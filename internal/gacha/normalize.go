package gacha

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownCategory = errors.New("unknown record category")

// SourceRecord is one upstream record shape that can be turned into a PullRecord.
type SourceRecord interface {
	Normalize() PullRecord
}

// CharacterPull is the character-banner record shape returned by the game API.
type CharacterPull struct {
	ID       string `json:"id,omitempty"`
	PoolID   string `json:"poolId"`
	CharID   string `json:"charId,omitempty"`
	CharName string `json:"charName"`
	Rarity   int    `json:"rarity"`
	IsNew    bool   `json:"isNew"`
	IsFree   bool   `json:"isFree"`
	GachaTs  string `json:"gachaTs"`
	SeqID    string `json:"seqId"`
}

// Normalize implements SourceRecord.
func (c CharacterPull) Normalize() PullRecord {
	return PullRecord{
		RecordID:      recordID(c.ID, c.PoolID, CategoryCharacter, c.SeqID),
		BannerID:      c.PoolID,
		ItemName:      c.CharName,
		Rarity:        c.Rarity,
		IsNew:         c.IsNew,
		IsFree:        c.IsFree,
		PullTimestamp: c.GachaTs,
		SequenceID:    c.SeqID,
		Category:      CategoryCharacter,
	}
}

// WeaponPull is the weapon-banner record shape. Weapon pulls are never free.
type WeaponPull struct {
	ID         string `json:"id,omitempty"`
	PoolID     string `json:"poolId"`
	WeaponID   string `json:"weaponId,omitempty"`
	WeaponName string `json:"weaponName"`
	WeaponType string `json:"weaponType,omitempty"`
	Rarity     int    `json:"rarity"`
	IsNew      bool   `json:"isNew"`
	GachaTs    string `json:"gachaTs"`
	SeqID      string `json:"seqId"`
}

// Normalize implements SourceRecord.
func (w WeaponPull) Normalize() PullRecord {
	return PullRecord{
		RecordID:      recordID(w.ID, w.PoolID, CategoryWeapon, w.SeqID),
		BannerID:      w.PoolID,
		ItemName:      w.WeaponName,
		Rarity:        w.Rarity,
		IsNew:         w.IsNew,
		PullTimestamp: w.GachaTs,
		SequenceID:    w.SeqID,
		Category:      CategoryWeapon,
	}
}

func recordID(id, bannerID string, cat Category, seq string) string {
	if id != "" {
		return id
	}
	return bannerID + "/" + string(cat) + "/" + seq
}

// DecodeSourceRecord reads the category tag and decodes the matching shape.
func DecodeSourceRecord(data []byte) (SourceRecord, error) {
	var tag struct {
		Category Category `json:"category"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("decode record tag: %w", err)
	}
	switch tag.Category {
	case CategoryCharacter:
		var c CharacterPull
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("decode character record: %w", err)
		}
		return c, nil
	case CategoryWeapon:
		var w WeaponPull
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("decode weapon record: %w", err)
		}
		return w, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, tag.Category)
	}
}

// DecodeSourceRecords decodes a list of raw tagged records and normalizes them.
func DecodeSourceRecords(raw []json.RawMessage) ([]PullRecord, error) {
	out := make([]PullRecord, 0, len(raw))
	for i, m := range raw {
		src, err := DecodeSourceRecord(m)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, src.Normalize())
	}
	return out, nil
}

// NormalizeAll maps source records to PullRecords, preserving order.
func NormalizeAll(src []SourceRecord) []PullRecord {
	out := make([]PullRecord, 0, len(src))
	for _, s := range src {
		out = append(out, s.Normalize())
	}
	return out
}
