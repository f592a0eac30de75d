package store

import (
	"reflect"
	"testing"

	"github.com/NYTimes/sqliface"

	"github.com/NYTimes/ajson/ajson"
)

func TestScanRecords(t *testing.T) {
	tests := []struct {
		given *sqliface.MockRows

		want    []*ajson.Record
		wantErr error
	}{
		// an empty slice when the table has no match
		{
			sqliface.NewMockRows(),

			[]*ajson.Record{},
			nil,
		},
		{
			sqliface.NewMockRows(
				sqliface.MockRow{
					uint64(1),
					"abc",
					"y",
				},
				sqliface.MockRow{
					uint64(2),
					"def",
					"",
				},
			),

			[]*ajson.Record{
				{ID: "1", Key1: "abc", Key2: "y"},
				{ID: "2", Key1: "def", Key2: ajson.DefaultKey2},
			},
			nil,
		},
		// the wrong type in a MockRow triggers a Scan error
		{
			sqliface.NewMockRows(
				sqliface.MockRow{
					uint64(1),
					uint64(123),
					"y",
				},
			),

			[]*ajson.Record(nil),
			sqliface.NewTypeError("string", uint64(123)),
		},
	}

	for _, test := range tests {
		got, gotErr := scanRecords(test.given)

		if !reflect.DeepEqual(gotErr, test.wantErr) {
			t.Errorf("expected error of %#v, got %#v", test.wantErr, gotErr)
		}

		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("expected records of %#v, got %#v", test.want, got)
		}
	}
}
