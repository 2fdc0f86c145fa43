package book

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-contacts/internal/config"
)

// EncodeVCards renders the given records as a vCard 4.0 stream. The record ID
// becomes the card UID and CreatedAt its REV timestamp, so an exported book
// can be correlated with the live one.
func EncodeVCards(contacts []Contact) ([]byte, error) {
	var buf bytes.Buffer
	enc := vcard.NewEncoder(&buf)

	for _, c := range contacts {
		card := make(vcard.Card)
		card.SetValue(vcard.FieldUID, c.ID)
		card.SetValue(vcard.FieldFormattedName, c.FullName())
		card.AddName(&vcard.Name{
			FamilyName: c.LastName,
			GivenName:  c.FirstName,
		})
		card.SetValue(vcard.FieldNickname, c.UserName)
		card.SetValue(vcard.FieldTelephone, c.Phone)
		if c.Email != "" {
			card.SetValue(vcard.FieldEmail, c.Email)
		}
		if c.Address != "" {
			card.AddAddress(&vcard.Address{StreetAddress: c.Address})
		}
		card.SetValue(vcard.FieldRevision, c.CreatedAt.UTC().Format(config.VCardRevLayout))
		vcard.ToV4(card)

		if err := enc.Encode(card); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
	}

	return buf.Bytes(), nil
}

// DecodeVCards parses a vCard stream into form data ready for ImportForms.
// Malformed cards are skipped to maximize data recovery; whether a decoded
// card is actually importable is decided later by validation.
func DecodeVCards(r io.Reader) ([]FormData, error) {
	dec := vcard.NewDecoder(r)
	var forms []FormData

	for {
		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompBook,
				config.LogKeyError, err)
			// The decoder cannot resynchronize after a framing error.
			if forms == nil {
				return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
			}
			break
		}
		forms = append(forms, cardToForm(card))
	}

	return forms, nil
}

// cardToForm maps vCard properties onto the form contract.
// Name strategy: N (structured) > FN split on whitespace.
// Username strategy: NICKNAME > email local part > "first.last".
func cardToForm(card vcard.Card) FormData {
	data := FormData{
		Phone:   strings.TrimSpace(card.Value(vcard.FieldTelephone)),
		Email:   strings.TrimSpace(card.Value(vcard.FieldEmail)),
		Address: "",
	}

	if name := card.Name(); name != nil {
		data.FirstName = strings.TrimSpace(name.GivenName)
		data.LastName = strings.TrimSpace(name.FamilyName)
	}
	if data.FirstName == "" && data.LastName == "" {
		parts := strings.Fields(card.Value(vcard.FieldFormattedName))
		if len(parts) > 0 {
			data.FirstName = parts[0]
			data.LastName = strings.Join(parts[1:], " ")
		}
	}

	if addr := card.Address(); addr != nil {
		data.Address = strings.TrimSpace(addr.StreetAddress)
	}

	data.UserName = strings.TrimSpace(card.Value(vcard.FieldNickname))
	if data.UserName == "" {
		data.UserName = userNameFallback(data)
	}

	return data
}

// userNameFallback derives a username for cards without a NICKNAME property,
// since the record contract requires one.
func userNameFallback(data FormData) string {
	if at := strings.IndexByte(data.Email, '@'); at > 0 {
		return data.Email[:at]
	}
	if data.FirstName != "" && data.LastName != "" {
		first := strings.ToLower(strings.Fields(data.FirstName)[0])
		last := strings.ToLower(strings.Fields(data.LastName)[0])
		return first + "." + last
	}
	return ""
}
