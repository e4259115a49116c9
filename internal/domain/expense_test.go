package domain

import (
	"testing"
	"time"
)

func datePtr(y int, m time.Month, d int) *Date {
	date := NewDate(y, m, d)
	return &date
}

func TestExpense_Validate(t *testing.T) {
	valid := Expense{
		Concept:   "Facebook Ads",
		Amount:    dec("200"),
		StartDate: NewDate(2024, time.January, 1),
		EndDate:   NewDate(2024, time.January, 12),
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	negative := valid
	negative.Amount = dec("-10")
	if !IsValidation(negative.Validate()) {
		t.Error("negative amount passed validation")
	}

	inverted := valid
	inverted.StartDate, inverted.EndDate = inverted.EndDate, inverted.StartDate
	if !IsValidation(inverted.Validate()) {
		t.Error("inverted date range passed validation")
	}

	empty := valid
	empty.Concept = ""
	if !IsValidation(empty.Validate()) {
		t.Error("empty concept passed validation")
	}
}

func TestExpense_Overlaps(t *testing.T) {
	tests := []struct {
		name       string
		start, end Date
		from, to   *Date
		want       bool
	}{
		{
			name:  "partial overlap on the left",
			start: NewDate(2024, time.January, 1),
			end:   NewDate(2024, time.January, 12),
			from:  datePtr(2024, time.January, 10),
			to:    datePtr(2024, time.January, 20),
			want:  true,
		},
		{
			name:  "entirely after the window",
			start: NewDate(2024, time.January, 21),
			end:   NewDate(2024, time.January, 25),
			from:  datePtr(2024, time.January, 10),
			to:    datePtr(2024, time.January, 20),
			want:  false,
		},
		{
			name:  "entirely before the window",
			start: NewDate(2023, time.December, 1),
			end:   NewDate(2023, time.December, 31),
			from:  datePtr(2024, time.January, 10),
			to:    datePtr(2024, time.January, 20),
			want:  false,
		},
		{
			name:  "expense spans the whole window",
			start: NewDate(2024, time.January, 1),
			end:   NewDate(2024, time.January, 31),
			from:  datePtr(2024, time.January, 10),
			to:    datePtr(2024, time.January, 20),
			want:  true,
		},
		{
			name:  "touching the window edge counts",
			start: NewDate(2024, time.January, 20),
			end:   NewDate(2024, time.January, 25),
			from:  datePtr(2024, time.January, 10),
			to:    datePtr(2024, time.January, 20),
			want:  true,
		},
		{
			name:  "open window matches everything",
			start: NewDate(2024, time.January, 1),
			end:   NewDate(2024, time.January, 2),
			want:  true,
		},
		{
			name:  "only lower bound",
			start: NewDate(2023, time.December, 1),
			end:   NewDate(2023, time.December, 31),
			from:  datePtr(2024, time.January, 1),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Expense{StartDate: tt.start, EndDate: tt.end}
			if got := e.Overlaps(tt.from, tt.to); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}
