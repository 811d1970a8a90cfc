package search

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpretEmptyMessage(t *testing.T) {
	c := Interpret("")
	assert.True(t, c.IsEmpty())

	c = Interpret("   \t  ")
	assert.True(t, c.IsEmpty())
}

func TestInterpretLocationPhrase(t *testing.T) {
	tests := []struct {
		name    string
		message string
		wanted  string
	}{
		{
			name:    "in phrase",
			message: "I need parking in central london please",
			wanted:  "central london",
		},
		{
			name:    "near phrase terminated by punctuation",
			message: "anything near camden, ideally covered",
			wanted:  "camden",
		},
		{
			name:    "X parking",
			message: "shoreditch parking for tomorrow",
			wanted:  "shoreditch",
		},
		{
			name:    "phrase cut before price clause",
			message: "parking in brixton under £20",
			wanted:  "brixton",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Interpret(tt.message)
			require.NotNil(t, c.Location)
			assert.Equal(t, tt.wanted, *c.Location)
		})
	}
}

func TestInterpretLocationNotExtractedFromFeatureWords(t *testing.T) {
	c := Interpret("need secure covered parking")
	assert.Nil(t, c.Location)
}

func TestInterpretPostcode(t *testing.T) {
	c := Interpret("parking near SE17 2BB please")
	require.NotNil(t, c.Postcode)
	assert.Equal(t, "SE17 2BB", *c.Postcode)

	// Lowercase input is normalized to uppercase.
	c = Interpret("anything around sw1a 1aa")
	require.NotNil(t, c.Postcode)
	assert.Equal(t, "SW1A 1AA", *c.Postcode)
}

func TestInterpretWhat3Words(t *testing.T) {
	c := Interpret("my spot is at ///Index.Home.Raft thanks")
	require.NotNil(t, c.What3Words)
	assert.Equal(t, "///index.home.raft", *c.What3Words)
}

func TestInterpretFeatures(t *testing.T) {
	c := Interpret("need secure covered parking")
	assert.Equal(t, []string{FeatureSecurity, FeatureCovered}, c.Features)

	c = Interpret("looking for EV charging, underground if possible, cheap")
	assert.Equal(t, []string{FeatureElectric, FeatureCovered, FeatureBudget}, c.Features)

	// "ev" must not fire inside other words.
	c = Interpret("everything is fine")
	assert.Empty(t, c.Features)
}

func TestInterpretFeatureDeduplication(t *testing.T) {
	c := Interpret("secure parking with cctv and 24/7 security")
	assert.Equal(t, []string{FeatureSecurity}, c.Features)
}

func TestInterpretMaxPrice(t *testing.T) {
	tests := []struct {
		message string
		wanted  int
	}{
		{"parking under £15", 15},
		{"less than 30 per day", 30},
		{"budget of £8", 8},
		{"max £100", 100},
		{"maximum 45", 45},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			c := Interpret(tt.message)
			require.NotNil(t, c.MaxPrice)
			assert.Equal(t, tt.wanted, *c.MaxPrice)
		})
	}

	c := Interpret("parking for £15")
	assert.Nil(t, c.MaxPrice)
}

func TestInterpretDateRanges(t *testing.T) {
	year := time.Now().Year()

	tests := []struct {
		name        string
		message     string
		wantedStart string
		wantedEnd   string
	}{
		{
			name:        "month day range defaults to current year",
			message:     "from March 15 - March 20",
			wantedStart: fmt.Sprintf("%d-03-15", year),
			wantedEnd:   fmt.Sprintf("%d-03-20", year),
		},
		{
			name:        "single month day",
			message:     "available from June 1",
			wantedStart: fmt.Sprintf("%d-06-01", year),
			wantedEnd:   "",
		},
		{
			name:        "slash dates",
			message:     "book 05/04/2026-10/04/2026",
			wantedStart: "2026-04-05",
			wantedEnd:   "2026-04-10",
		},
		{
			name:        "iso dates",
			message:     "between 2026-09-01 - 2026-09-03",
			wantedStart: "2026-09-01",
			wantedEnd:   "2026-09-03",
		},
		{
			name:        "unparseable dropped silently",
			message:     "from Wheneverber 99",
			wantedStart: "",
			wantedEnd:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Interpret(tt.message)
			if tt.wantedStart == "" {
				assert.Nil(t, c.StartDate)
			} else {
				require.NotNil(t, c.StartDate)
				assert.Equal(t, tt.wantedStart, *c.StartDate)
			}
			if tt.wantedEnd == "" {
				assert.Nil(t, c.EndDate)
			} else {
				require.NotNil(t, c.EndDate)
				assert.Equal(t, tt.wantedEnd, *c.EndDate)
			}
		})
	}
}

func TestInterpretCombinedMessage(t *testing.T) {
	c := Interpret("find secure parking in vauxhall under £25 from March 3")

	require.NotNil(t, c.Location)
	assert.Equal(t, "vauxhall", *c.Location)
	assert.Equal(t, []string{FeatureSecurity}, c.Features)
	require.NotNil(t, c.MaxPrice)
	assert.Equal(t, 25, *c.MaxPrice)
	require.NotNil(t, c.StartDate)
}

func TestInterpretNeverPanics(t *testing.T) {
	inputs := []string{
		"£££",
		"///a.b",
		"from  -  to ",
		"in ",
		"parking parking parking",
		"1234567890",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { Interpret(in) }, in)
	}
}
