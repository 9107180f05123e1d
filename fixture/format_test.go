package fixture

import "testing"

func TestNormalizeFormat(t *testing.T) {
	cases := []struct {
		in   Format
		want Format
	}{
		{"", FormatCSV},
		{"csv", FormatCSV},
		{"CSV", FormatCSV},
		{" sqlite ", FormatSQLite},
		{"sqlite3", FormatSQLite},
		{"db", FormatSQLite},
		{"xlsx", FormatXLSX},
		{"excel", FormatXLSX},
		{"xls", FormatXLSX},
		{"parquet", Format("parquet")},
	}

	for _, tc := range cases {
		if got := NormalizeFormat(tc.in); got != tc.want {
			t.Fatalf("NormalizeFormat(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
