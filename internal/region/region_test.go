package region

import (
	"testing"
	"time"
)

func TestSeasonFor(t *testing.T) {
	cases := []struct {
		month time.Month
		key   string
	}{
		{time.March, "spring"},
		{time.May, "spring"},
		{time.June, "summer"},
		{time.August, "summer"},
		{time.September, "autumn"},
		{time.November, "autumn"},
		{time.December, "winter"},
		{time.January, "winter"},
		{time.February, "winter"},
	}
	for _, tc := range cases {
		date := time.Date(2025, tc.month, 15, 0, 0, 0, 0, time.UTC)
		got := SeasonFor(date)
		if got.Key != tc.key {
			t.Errorf("SeasonFor(%s) = %s, want %s", tc.month, got.Key, tc.key)
		}
		if len(got.Veggies) == 0 {
			t.Errorf("Season %s has no vegetables", got.Key)
		}
	}
}

func TestResolve(t *testing.T) {
	t.Run("SpecificProvince", func(t *testing.T) {
		got := Resolve("广州")
		if got.Kind != KindSpecific {
			t.Fatalf("Expected specific, got %s", got.Kind)
		}
		if got.Province == nil || got.Province.Name != "广东" {
			t.Errorf("Expected 广东 province, got %+v", got.Province)
		}
	})

	t.Run("SubstringContainment", func(t *testing.T) {
		got := Resolve("广州市天河区")
		if got.Kind != KindSpecific || got.Province == nil || got.Province.Name != "广东" {
			t.Errorf("Expected 广东 for 广州市天河区, got %+v", got)
		}
	})

	t.Run("SpecificWinsOverGeneral", func(t *testing.T) {
		// 济南 is a 山东 city and 山东 also appears in the north list
		got := Resolve("济南")
		if got.Kind != KindSpecific || got.Province == nil || got.Province.Name != "山东" {
			t.Errorf("Expected specific 山东 for 济南, got %+v", got)
		}
	})

	t.Run("North", func(t *testing.T) {
		got := Resolve("北京")
		if got.Kind != KindNorth {
			t.Errorf("Expected north for 北京, got %s", got.Kind)
		}
		if got.Province != nil {
			t.Error("North region must not carry province data")
		}
	})

	t.Run("South", func(t *testing.T) {
		got := Resolve("上海")
		if got.Kind != KindSouth {
			t.Errorf("Expected south for 上海, got %s", got.Kind)
		}
	})

	t.Run("Unknown", func(t *testing.T) {
		got := Resolve("巴黎")
		if got.Kind != KindGeneral {
			t.Errorf("Expected general for unknown city, got %s", got.Kind)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		got := Resolve("")
		if got.Kind != KindGeneral {
			t.Errorf("Expected general for empty city, got %s", got.Kind)
		}
	})
}

func TestStapleDescriptor(t *testing.T) {
	cases := []struct {
		city string
		want string
	}{
		{"郑州", "杂粮馒头/全麦面"}, // 河南 staple mentions 面
		{"北京", "杂粮馒头/全麦面"}, // north
		{"广州", "杂粮饭/糙米饭"},  // 广东 is rice country
		{"成都", "杂粮饭/糙米饭"},  // 四川
		{"上海", "杂粮饭/糙米饭"},  // south
		{"巴黎", "杂粮饭/糙米饭"},  // general
	}
	for _, tc := range cases {
		if got := Resolve(tc.city).StapleDescriptor(); got != tc.want {
			t.Errorf("StapleDescriptor(%s) = %s, want %s", tc.city, got, tc.want)
		}
	}
}
