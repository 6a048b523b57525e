// Package region resolves a user's city to a geographic bucket and the
// current date to a culinary season. Both drive meal selection bias and
// seasonal ingredient localization.
package region

import (
	"strings"
	"time"
)

// Season is one of the four fixed 3-month buckets with its characteristic
// vegetables, ordered for deterministic day-by-day rotation.
type Season struct {
	Key     string
	Name    string
	Veggies []string
}

var seasons = []struct {
	season Season
	months [3]time.Month
}{
	{Season{Key: "spring", Name: "春季", Veggies: []string{"春笋", "菠菜", "韭菜", "香椿", "豌豆苗", "荠菜", "芦笋"}}, [3]time.Month{time.March, time.April, time.May}},
	{Season{Key: "summer", Name: "夏季", Veggies: []string{"黄瓜", "番茄", "苦瓜", "丝瓜", "冬瓜", "茄子", "空心菜", "苋菜"}}, [3]time.Month{time.June, time.July, time.August}},
	{Season{Key: "autumn", Name: "秋季", Veggies: []string{"莲藕", "南瓜", "红薯", "山药", "大白菜", "胡萝卜", "百合"}}, [3]time.Month{time.September, time.October, time.November}},
	{Season{Key: "winter", Name: "冬季", Veggies: []string{"白萝卜", "大葱", "胡萝卜", "西蓝花", "芹菜", "塌菜", "冬笋"}}, [3]time.Month{time.December, time.January, time.February}},
}

// SeasonFor maps a point in time to its season bucket.
func SeasonFor(t time.Time) Season {
	month := t.Month()
	for _, entry := range seasons {
		for _, m := range entry.months {
			if m == month {
				return entry.season
			}
		}
	}
	return seasons[0].season
}

// Kind tags the result of resolving a city string.
type Kind string

const (
	KindSpecific Kind = "specific"
	KindNorth    Kind = "north"
	KindSouth    Kind = "south"
	KindGeneral  Kind = "general"
)

// Province holds the curated data for a specifically recognized province.
type Province struct {
	Key         string
	Name        string
	Cities      []string
	Staple      string
	Flavor      string
	LocalDishes []string
}

// Region is the tagged resolution result. Province is set only for
// KindSpecific; Name and Staple are set for KindSpecific, KindNorth and
// KindSouth.
type Region struct {
	Kind     Kind
	Name     string
	Staple   string
	Flavor   string
	Province *Province
}

// provinces is checked in order before the broad north/south lists, so a
// specific match always wins over a general one.
var provinces = []Province{
	{Key: "henan", Name: "河南", Cities: []string{"郑州", "洛阳", "开封", "新乡", "安阳", "许昌", "南阳"}, Staple: "烩面/馒头", Flavor: "咸香", LocalDishes: []string{"胡辣汤", "鲤鱼", "烩面", "道口烧鸡", "蒸菜"}},
	{Key: "guangdong", Name: "广东", Cities: []string{"广州", "深圳", "佛山", "东莞", "珠海"}, Staple: "米饭/河粉", Flavor: "清淡/鲜美", LocalDishes: []string{"早茶", "白切鸡", "清蒸鱼", "煲汤", "肠粉", "烧鹅"}},
	{Key: "sichuan", Name: "四川", Cities: []string{"成都", "绵阳", "德阳", "宜宾"}, Staple: "米饭", Flavor: "麻辣", LocalDishes: []string{"回锅肉", "麻婆豆腐", "宫保鸡丁", "鱼香肉丝", "水煮肉片"}},
	{Key: "hunan", Name: "湖南", Cities: []string{"长沙", "株洲", "湘潭"}, Staple: "米饭/米粉", Flavor: "香辣", LocalDishes: []string{"剁椒鱼头", "小炒肉", "外婆菜"}},
	{Key: "jiangsu", Name: "江苏", Cities: []string{"南京", "苏州", "无锡"}, Staple: "米饭", Flavor: "甜润/清淡", LocalDishes: []string{"盐水鸭", "松鼠桂鱼", "红烧狮子头"}},
	{Key: "shandong", Name: "山东", Cities: []string{"济南", "青岛", "烟台"}, Staple: "馒头/煎饼", Flavor: "咸鲜/葱蒜", LocalDishes: []string{"煎饼卷大葱", "葱烧海参", "四喜丸子"}},
}

var (
	northCities = []string{"北京", "天津", "河北", "山西", "内蒙古", "辽宁", "吉林", "黑龙江", "山东", "陕西", "甘肃", "宁夏", "青海", "新疆"}
	southCities = []string{"上海", "江苏", "浙江", "安徽", "福建", "江西", "湖北", "湖南", "广西", "海南", "重庆", "贵州", "云南", "西藏"}
)

// Resolve maps a free-text city to a region bucket. Matching is by substring
// containment: "广州市天河区" matches the listed "广州".
func Resolve(city string) Region {
	if city == "" {
		return Region{Kind: KindGeneral}
	}
	for i := range provinces {
		p := &provinces[i]
		for _, c := range p.Cities {
			if strings.Contains(city, c) {
				return Region{Kind: KindSpecific, Name: p.Name, Staple: p.Staple, Flavor: p.Flavor, Province: p}
			}
		}
	}
	for _, c := range northCities {
		if strings.Contains(city, c) {
			return Region{Kind: KindNorth, Name: "北方地区", Staple: "面食/杂粮", Flavor: "咸鲜"}
		}
	}
	for _, c := range southCities {
		if strings.Contains(city, c) {
			return Region{Kind: KindSouth, Name: "南方地区", Staple: "米饭", Flavor: "清淡/鲜辣"}
		}
	}
	return Region{Kind: KindGeneral}
}

// StapleDescriptor derives the staple text substituted for the {staple}
// placeholder: wheat-based for the north and for provinces whose staple
// mentions flour foods, rice-based otherwise.
func (r Region) StapleDescriptor() string {
	if r.Kind == KindNorth || (r.Kind == KindSpecific && strings.Contains(r.Staple, "面")) {
		return "杂粮馒头/全麦面"
	}
	return "杂粮饭/糙米饭"
}
