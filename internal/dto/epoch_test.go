package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEpochMillis_Unmarshal(t *testing.T) {
	cases := []struct {
		name string
		body string
		want EpochMillis
	}{
		{"number", `{"dateStart":1700000000000}`, 1700000000000},
		{"numeric string", `{"dateStart":"1700000000000"}`, 1700000000000},
		{"null", `{"dateStart":null}`, 0},
		{"empty string", `{"dateStart":""}`, 0},
		{"absent", `{}`, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var payload DiseaseDto
			require.NoError(t, json.Unmarshal([]byte(tc.body), &payload))
			assert.Equal(t, tc.want, payload.DateStart)
		})
	}

	var payload DiseaseDto
	assert.Error(t, json.Unmarshal([]byte(`{"dateStart":"yesterday"}`), &payload))
}

func TestEpochMillis_Time(t *testing.T) {
	assert.Nil(t, EpochMillis(0).Time())

	got := EpochMillis(1700000000000).Time()
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2023, time.November, 14, 22, 13, 20, 0, time.UTC), *got)
}
