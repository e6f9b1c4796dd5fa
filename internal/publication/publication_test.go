package publication

import (
	"reflect"
	"testing"
)

func TestSortByDate(t *testing.T) {
	pubs := []Publication{
		{Title: "a", Date: "2021"},
		{Title: "b", Date: "2020-06"},
		{Title: "c", Date: "2022-01"},
	}
	SortByDate(pubs)

	var got []string
	for _, p := range pubs {
		got = append(got, p.Date)
	}
	want := []string{"2022-01", "2021", "2020-06"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortByDate() dates = %v, want %v", got, want)
	}
}

func TestSortByDate_MixedGranularity(t *testing.T) {
	// Year-only dates compare as prefixes of year-month dates.
	pubs := []Publication{
		{Date: "2020"},
		{Date: "2021"},
		{Date: "2020-06"},
	}
	SortByDate(pubs)

	var got []string
	for _, p := range pubs {
		got = append(got, p.Date)
	}
	want := []string{"2021", "2020-06", "2020"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortByDate() dates = %v, want %v", got, want)
	}
}

func TestSortByDate_StableForTies(t *testing.T) {
	pubs := []Publication{
		{Title: "first", Date: "2020"},
		{Title: "second", Date: "2020"},
		{Title: "newer", Date: "2021"},
		{Title: "third", Date: "2020"},
	}
	SortByDate(pubs)

	var got []string
	for _, p := range pubs {
		got = append(got, p.Title)
	}
	want := []string{"newer", "first", "second", "third"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortByDate() titles = %v, want %v", got, want)
	}
}
