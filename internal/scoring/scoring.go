// Package scoring 计算schema的完成度指标：
// 全局分数按"非空叶子字段/全部叶子字段"递归统计，
// 核心分数只看7项招聘方真正关心的要点。
package scoring

import (
	"encoding/json"
	"math"
	"strings"

	"cv-parser-go/internal/types"
)

// Scores 一次解析的完成度结果（百分比，1位小数）
type Scores struct {
	Core   float64 `json:"completezza_core_pct"`
	Global float64 `json:"completezza_globale_pct"`
}

// countFields 递归统计(总字段数, 非空字段数)。
// 规则：字符串按trim后非空计；空列表计为1个未填字段；
// 数字/布尔视为已填；null计为未填
func countFields(x interface{}) (int, int) {
	switch v := x.(type) {
	case nil:
		return 1, 0
	case string:
		if strings.TrimSpace(v) == "" {
			return 1, 0
		}
		return 1, 1
	case map[string]interface{}:
		tot, filled := 0, 0
		for _, item := range v {
			t, f := countFields(item)
			tot += t
			filled += f
		}
		return tot, filled
	case []interface{}:
		if len(v) == 0 {
			return 1, 0
		}
		tot, filled := 0, 0
		for _, item := range v {
			t, f := countFields(item)
			tot += t
			filled += f
		}
		return tot, filled
	default:
		return 1, 1
	}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Completion 全局完成度：presence-based，递归遍历整个schema
func Completion(schema *types.InternalRecord) float64 {
	if schema == nil {
		return 0.0
	}
	raw, err := json.Marshal(schema)
	if err != nil {
		return 0.0
	}
	var generic map[string]interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return 0.0
	}
	tot, filled := countFields(generic)
	if tot == 0 {
		return 0.0
	}
	return round1(float64(filled) / float64(tot) * 100.0)
}

func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}

// CoreCompletion 核心完成度，7项检查：
// 名、姓、至少一种联系方式、城市、国家、
// 首条工作经历(职位或公司)+(起或止日期)、首条教育经历同理
func CoreCompletion(schema *types.InternalRecord) float64 {
	if schema == nil {
		return 0.0
	}
	an := schema.Personal
	ct := schema.Contacts

	var exp0 types.ExperienceEntry
	if len(schema.Experience) > 0 {
		exp0 = schema.Experience[0]
	}
	var edu0 types.EducationEntry
	if len(schema.Education) > 0 {
		edu0 = schema.Education[0]
	}

	checks := []bool{
		filled(an.Name),
		filled(an.Surname),
		filled(ct.Email) || filled(ct.Phone) || filled(ct.Mobile),
		filled(ct.Address.City),
		filled(ct.Address.Country),
		(filled(exp0.Position) || filled(exp0.Company)) &&
			(filled(exp0.StartDate) || filled(exp0.EndDate)),
		(filled(edu0.Title) || filled(edu0.Institution)) &&
			(filled(edu0.StartDate) || filled(edu0.EndDate)),
	}

	score := 0
	for _, c := range checks {
		if c {
			score++
		}
	}
	return round1(float64(score) / float64(len(checks)) * 100.0)
}

// Compute 一次算齐核心和全局分数
func Compute(schema *types.InternalRecord) Scores {
	return Scores{
		Core:   CoreCompletion(schema),
		Global: Completion(schema),
	}
}
