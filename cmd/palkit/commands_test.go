package main

import (
	"slices"
	"testing"
)

func TestParseIndices(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []uint32
		wantErr bool
	}{
		{"単一", []string{"3"}, []uint32{3}, false},
		{"範囲", []string{"10-12", "1"}, []uint32{10, 11, 12, 1}, false},
		{"16進数", []string{"0x10"}, []uint32{16}, false},
		{"指定なし", nil, nil, false},
		{"逆順の範囲", []string{"5-2"}, nil, true},
		{"数字以外", []string{"abc"}, nil, true},
		{"負数", []string{"-1"}, nil, true},
		{"範囲が大きすぎる", []string{"0-4294967295"}, nil, true},
		{"合計が上限を超える", []string{"0-65535", "7"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIndices(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseIndices(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("parseIndices(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestParseIndices_Limit(t *testing.T) {
	got, err := parseIndices([]string{"1-65536"})
	if err != nil {
		t.Fatalf("parseIndices() error = %v", err)
	}
	if len(got) != maxIndices {
		t.Errorf("len(parseIndices()) = %d, want %d", len(got), maxIndices)
	}
	if got[len(got)-1] != 65536 {
		t.Errorf("最後の番号 = %d, want 65536", got[len(got)-1])
	}
}
