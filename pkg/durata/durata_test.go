package durata

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestFromOreMinuti(t *testing.T) {
	cases := []struct {
		ore, minuti int
		want        Millis
	}{
		{0, 0, 0},
		{0, 1, 60_000},
		{1, 0, 3_600_000},
		{2, 0, 7_200_000},
		{0, 45, 2_700_000},
		{8, 0, 28_800_000},
		{100, 59, 363_540_000},
	}
	for _, c := range cases {
		got, err := FromOreMinuti(c.ore, c.minuti)
		if err != nil {
			t.Fatalf("FromOreMinuti(%d, %d): %v", c.ore, c.minuti, err)
		}
		if got != c.want {
			t.Errorf("FromOreMinuti(%d, %d) = %d, want %d", c.ore, c.minuti, got, c.want)
		}
	}
}

func TestFromOreMinuti_Invalid(t *testing.T) {
	if _, err := FromOreMinuti(-1, 0); !errors.Is(err, ErrOreNegative) {
		t.Errorf("ore=-1: want ErrOreNegative, got %v", err)
	}
	if _, err := FromOreMinuti(0, 60); !errors.Is(err, ErrMinutiRange) {
		t.Errorf("minuti=60: want ErrMinutiRange, got %v", err)
	}
	if _, err := FromOreMinuti(0, -1); !errors.Is(err, ErrMinutiRange) {
		t.Errorf("minuti=-1: want ErrMinutiRange, got %v", err)
	}
}

func TestFromOreMinuti_Monotonic(t *testing.T) {
	prev := Millis(-1)
	for ore := 0; ore <= 3; ore++ {
		for minuti := 0; minuti <= 59; minuti++ {
			got, err := FromOreMinuti(ore, minuti)
			if err != nil {
				t.Fatalf("FromOreMinuti(%d, %d): %v", ore, minuti, err)
			}
			if got <= prev {
				t.Fatalf("not strictly increasing at (%d, %d): %d <= %d", ore, minuti, got, prev)
			}
			prev = got
		}
	}
}

func TestOreMinuti_RoundTrip(t *testing.T) {
	for _, pair := range [][2]int{{0, 0}, {0, 59}, {1, 30}, {12, 7}, {200, 0}} {
		ms, err := FromOreMinuti(pair[0], pair[1])
		if err != nil {
			t.Fatal(err)
		}
		ore, minuti := ms.OreMinuti()
		if ore != pair[0] || minuti != pair[1] {
			t.Errorf("round trip of (%d, %d) gave (%d, %d)", pair[0], pair[1], ore, minuti)
		}
	}
}

func TestSum(t *testing.T) {
	if got := Sum(nil); got != 0 {
		t.Errorf("Sum(nil) = %d, want 0", got)
	}
	values := []Millis{7_200_000, 2_700_000, 28_800_000}
	want := Millis(38_700_000)
	if got := Sum(values); got != want {
		t.Errorf("Sum = %d, want %d", got, want)
	}
	permuted := []Millis{28_800_000, 7_200_000, 2_700_000}
	if got := Sum(permuted); got != want {
		t.Errorf("Sum over permutation = %d, want %d", got, want)
	}
}

func TestMillis_JSON(t *testing.T) {
	out, err := json.Marshal(Millis(9_900_000))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `"9900000"` {
		t.Errorf("marshal = %s, want \"9900000\"", out)
	}

	var m Millis
	if err := json.Unmarshal([]byte(`"28800000"`), &m); err != nil {
		t.Fatal(err)
	}
	if m != 28_800_000 {
		t.Errorf("unmarshal string = %d", m)
	}
	if err := json.Unmarshal([]byte(`60000`), &m); err != nil {
		t.Fatal(err)
	}
	if m != 60_000 {
		t.Errorf("unmarshal number = %d", m)
	}
	if err := json.Unmarshal([]byte(`"abc"`), &m); err == nil {
		t.Error("unmarshal of non-numeric string should fail")
	}
}
