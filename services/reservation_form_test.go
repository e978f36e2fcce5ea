package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeReservationForm(t *testing.T) {
	form, err := DecodeReservationForm([]byte(`{"name":"Jean","email":"jean@example.com","phone":"1234567890","guests":"4","date":"2026-10-17","time":"19:00"}`))
	require.NoError(t, err)
	assert.Equal(t, json.Number("4"), form.Guests)
	assert.Equal(t, "Jean", form.Name)

	form, err = DecodeReservationForm([]byte(`{"guests":4}`))
	require.NoError(t, err)
	assert.Equal(t, json.Number("4"), form.Guests)

	form, err = DecodeReservationForm([]byte(`{"name":null,"guests":null}`))
	require.NoError(t, err)
	assert.Empty(t, form.Name)
	assert.Empty(t, form.Guests)
}

func TestDecodeReservationFormWrongTypes(t *testing.T) {
	cases := map[string][]string{
		`{"name":123}`:                    {"name"},
		`{"guests":true}`:                 {"guests"},
		`{"guests":[4]}`:                  {"guests"},
		`{"email":{"a":1},"time":1900}`:   {"email", "time"},
		`{"phone":false,"date":20261017}`: {"phone", "date"},
	}
	for body, want := range cases {
		_, err := DecodeReservationForm([]byte(body))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, body)
		var fields []string
		for _, fe := range verr.Errors {
			fields = append(fields, fe.Field)
		}
		assert.Equal(t, want, fields, body)
	}
}

func TestDecodeReservationFormMalformed(t *testing.T) {
	for _, body := range []string{``, `{"name":`, `[1,2]`, `"jean"`} {
		_, err := DecodeReservationForm([]byte(body))
		assert.ErrorIs(t, err, ErrMalformedForm, body)
	}
}

// A non-numeric string decodes and is then rejected by the guests rule.
func TestDecodeReservationFormGuestsText(t *testing.T) {
	form := validForm()
	decoded, err := DecodeReservationForm([]byte(`{"guests":"abc"}`))
	require.NoError(t, err)
	form.Guests = decoded.Guests

	assert.Equal(t, []string{"guests"}, fieldsOf(testValidator().Validate(form)))
}
