package planner

import "diet-planner/internal/profile"

// baseTips rotate through the dietary-guideline reminders shown once per day.
var baseTips = []string{
	"每天摄入12种以上食物，每周25种以上。",
	"每天喝水1500-1700ml，提倡喝白开水。",
	"吃动平衡，健康体重，每天活动6000步。",
	"少盐少油，控糖限酒，清淡饮食。",
	"多吃蔬果、奶类、全谷、大豆。",
	"早餐要吃好，午餐要吃饱，晚餐要吃少。",
	"适量吃鱼、禽、蛋、瘦肉。",
}

// timeTips are batch-cooking hints interleaved for users short on time.
var timeTips = []string{
	"时间紧张时，可一次备好两餐的量（如卤肉、炖菜）。",
	"利用周末提前清洗切配蔬菜，密封冷藏。",
	"善用电饭煲预约功能，早起就能喝粥。",
	"冷冻蔬菜和半成品（如免洗沙拉菜）也是好选择。",
}

// DailyTip picks the tip for a day. In limited mode batch-cooking tips are
// shown on odd days.
func DailyTip(dayIndex int, cookingTime profile.CookingTime) string {
	if cookingTime == profile.CookingLimited && dayIndex%2 != 0 {
		return timeTips[dayIndex%len(timeTips)]
	}
	return baseTips[dayIndex%len(baseTips)]
}
