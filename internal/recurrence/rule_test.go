package recurrence

import (
	"reflect"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Rule
	}{
		{
			"daily",
			"RRULE:FREQ=DAILY",
			Rule{Freq: FreqDaily},
		},
		{
			"weekly with days and count",
			"RRULE:FREQ=WEEKLY;BYDAY=MO,WE;COUNT=5",
			Rule{Freq: FreqWeekly, ByDay: []Weekday{Monday, Wednesday}, End: EndCount, Count: 5},
		},
		{
			"monthly with until",
			"RRULE:FREQ=MONTHLY;UNTIL=20261231T235900Z",
			Rule{Freq: FreqMonthly, End: EndUntil, Until: "20261231T235900Z"},
		},
		{
			"until beats count",
			"RRULE:FREQ=DAILY;COUNT=3;UNTIL=20261231",
			Rule{Freq: FreqDaily, End: EndUntil, Until: "20261231"},
		},
		{
			"byday ignored for daily",
			"RRULE:FREQ=DAILY;BYDAY=MO,TU",
			Rule{Freq: FreqDaily},
		},
		{
			"byday order normalized",
			"RRULE:FREQ=WEEKLY;BYDAY=FR,MO,FR",
			Rule{Freq: FreqWeekly, ByDay: []Weekday{Monday, Friday}},
		},
		{
			"pairs order independent",
			"RRULE:COUNT=2;FREQ=WEEKLY;BYDAY=TU",
			Rule{Freq: FreqWeekly, ByDay: []Weekday{Tuesday}, End: EndCount, Count: 2},
		},
		{
			"unknown freq means none",
			"RRULE:FREQ=YEARLY",
			Rule{},
		},
		{
			"missing freq means none",
			"RRULE:COUNT=5",
			Rule{},
		},
		{
			"missing prefix means none",
			"FREQ=DAILY",
			Rule{},
		},
		{
			"empty string means none",
			"",
			Rule{},
		},
		{
			"non-positive count ignored",
			"RRULE:FREQ=DAILY;COUNT=0",
			Rule{Freq: FreqDaily},
		},
		{
			"unparseable count ignored",
			"RRULE:FREQ=DAILY;COUNT=lots",
			Rule{Freq: FreqDaily},
		},
		{
			"unknown keys skipped",
			"RRULE:FREQ=WEEKLY;INTERVAL=2;WKST=MO;BYDAY=SA",
			Rule{Freq: FreqWeekly, ByDay: []Weekday{Saturday}},
		},
		{
			"invalid weekday codes dropped",
			"RRULE:FREQ=WEEKLY;BYDAY=MO,XX,FR",
			Rule{Freq: FreqWeekly, ByDay: []Weekday{Monday, Friday}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Decode(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		in   Rule
		want string
	}{
		{"none yields empty", Rule{}, ""},
		{"daily", Rule{Freq: FreqDaily}, "RRULE:FREQ=DAILY"},
		{
			"weekly with days",
			Rule{Freq: FreqWeekly, ByDay: []Weekday{Wednesday, Monday}},
			"RRULE:FREQ=WEEKLY;BYDAY=MO,WE",
		},
		{
			"weekly without days omits byday",
			Rule{Freq: FreqWeekly},
			"RRULE:FREQ=WEEKLY",
		},
		{
			"daily never serializes byday",
			Rule{Freq: FreqDaily, ByDay: []Weekday{Monday}},
			"RRULE:FREQ=DAILY",
		},
		{
			"count",
			Rule{Freq: FreqMonthly, End: EndCount, Count: 12},
			"RRULE:FREQ=MONTHLY;COUNT=12",
		},
		{
			"until token emitted verbatim",
			Rule{Freq: FreqDaily, End: EndUntil, Until: "20261231T235900Z"},
			"RRULE:FREQ=DAILY;UNTIL=20261231T235900Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Encode(tt.in); got != tt.want {
				t.Errorf("Encode(%+v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	// decode(encode(r)) == r for representable rules: any frequency, and
	// for weekly rules a non-empty weekday set.
	rules := []Rule{
		{Freq: FreqDaily},
		{Freq: FreqMonthly},
		{Freq: FreqDaily, End: EndCount, Count: 7},
		{Freq: FreqWeekly, ByDay: []Weekday{Monday, Wednesday}, End: EndCount, Count: 5},
		{Freq: FreqWeekly, ByDay: []Weekday{Saturday, Sunday}},
		{Freq: FreqMonthly, End: EndUntil, Until: "20261231T235900Z"},
		{Freq: FreqWeekly, ByDay: []Weekday{Friday}, End: EndUntil, Until: "20270601"},
	}

	for _, r := range rules {
		encoded := Encode(r)
		decoded := Decode(encoded)
		if !reflect.DeepEqual(decoded, r) {
			t.Errorf("round trip of %+v via %q = %+v", r, encoded, decoded)
		}
	}
}

func TestRoundTripExampleString(t *testing.T) {
	const in = "RRULE:FREQ=WEEKLY;BYDAY=MO,WE;COUNT=5"
	decoded := Decode(in)

	want := Rule{Freq: FreqWeekly, ByDay: []Weekday{Monday, Wednesday}, End: EndCount, Count: 5}
	if !reflect.DeepEqual(decoded, want) {
		t.Fatalf("Decode(%q) = %+v, want %+v", in, decoded, want)
	}
	if got := Encode(decoded); got != in {
		t.Errorf("Encode(Decode(%q)) = %q, want identical string", in, got)
	}
}
