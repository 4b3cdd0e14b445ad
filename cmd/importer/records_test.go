package main

import (
	"path/filepath"
	"strings"
	"testing"

	"smv-nearby/internal/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []PlaceRecord
		wantErr string
	}{
		{
			name: "valid rows with aliases",
			input: "name,category,lat,lon\n" +
				"APS Academy,school,26.8567,80.9362\n" +
				"Charbagh,bus_station,26.8320,80.9230\n" +
				"Phoenix Palassio, shopping_mall, 26.7870, 80.9980\n",
			want: []PlaceRecord{
				{Name: "APS Academy", Category: models.School, Location: models.Coordinate{Lat: 26.8567, Lon: 80.9362}},
				{Name: "Charbagh", Category: models.BusStop, Location: models.Coordinate{Lat: 26.8320, Lon: 80.9230}},
				{Name: "Phoenix Palassio", Category: models.Mall, Location: models.Coordinate{Lat: 26.7870, Lon: 80.9980}},
			},
		},
		{
			name:  "header only",
			input: "name,category,lat,lon\n",
			want:  nil,
		},
		{
			name:    "empty file",
			input:   "",
			wantErr: "failed to read header",
		},
		{
			name:    "unknown category",
			input:   "name,category,lat,lon\nKGMU,hospital,26.87,80.91\n",
			wantErr: `line 2: unknown place category "hospital"`,
		},
		{
			name:    "short row",
			input:   "name,category,lat,lon\nKGMU,school,26.87\n",
			wantErr: "line 2: invalid record length: 3",
		},
		{
			name:    "latitude out of range",
			input:   "name,category,lat,lon\nNowhere,mall,95,80.91\n",
			wantErr: "line 2: invalid latitude: 95.000000",
		},
		{
			name:    "unparsable longitude",
			input:   "name,category,lat,lon\nNowhere,mall,26.8,east\n",
			wantErr: "line 2: invalid longitude: east",
		},
		{
			name:    "missing name",
			input:   "name,category,lat,lon\n ,mall,26.8,80.9\n",
			wantErr: "line 2: empty name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCSV(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseCSV() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"name", "category", "lat", "lon"},
		{"City Montessori", "school", "26,8601", "80,9446"},
		{},
		{"Hazratganj Stop", "bus", 26.8505, 80.9462},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	got, err := readRecords(path, "")
	require.NoError(t, err)

	want := []PlaceRecord{
		{Name: "City Montessori", Category: models.School, Location: models.Coordinate{Lat: 26.8601, Lon: 80.9446}},
		{Name: "Hazratganj Stop", Category: models.BusStop, Location: models.Coordinate{Lat: 26.8505, Lon: 80.9462}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("readRecords() mismatch (-want +got):\n%s", diff)
	}

	_, err = readRecords(path, "Missing")
	assert.Error(t, err)
}

func TestReadRecords_UnsupportedExtension(t *testing.T) {
	_, err := readRecords("places.json", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported file type ".json"`)
}

func TestPointEWKT(t *testing.T) {
	assert.Equal(t, "SRID=4326;POINT(80.946200 26.846700)", pointEWKT(26.8467, 80.9462))
}
