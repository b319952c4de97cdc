package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cv-parser-go/internal/types"
)

func fullRecord() *types.InternalRecord {
	rec := &types.InternalRecord{}
	rec.Personal.Name = "Mario"
	rec.Personal.Surname = "Bianchi"
	rec.Contacts.Email = "mario.bianchi@example.it"
	rec.Contacts.Address.City = "Milano"
	rec.Contacts.Address.Country = "Italy"
	rec.Experience = []types.ExperienceEntry{{Position: "Engineer", StartDate: "2020-01-01"}}
	rec.Education = []types.EducationEntry{{Title: "Laurea", EndDate: "2019-01-01"}}
	return rec
}

// TestCoreCompletion 7项核心检查的边界值
func TestCoreCompletion(t *testing.T) {
	assert.InDelta(t, 100.0, CoreCompletion(fullRecord()), 0.01)

	empty := &types.InternalRecord{}
	assert.InDelta(t, 0.0, CoreCompletion(empty), 0.01)

	// 只有名字：1/7 → 14.3
	one := &types.InternalRecord{}
	one.Personal.Name = "Mario"
	assert.InDelta(t, 14.3, CoreCompletion(one), 0.01, "四舍五入到1位小数")

	assert.InDelta(t, 0.0, CoreCompletion(nil), 0.01)
}

// TestCoreCompletionPairedChecks 经历检查要求(职位|公司)和(起|止)同时满足
func TestCoreCompletionPairedChecks(t *testing.T) {
	rec := &types.InternalRecord{}
	rec.Experience = []types.ExperienceEntry{{Position: "Engineer"}}
	assert.InDelta(t, 0.0, CoreCompletion(rec), 0.01, "有职位没日期不计分")

	rec.Experience[0].EndDate = "2022-01-01"
	assert.InDelta(t, 14.3, CoreCompletion(rec), 0.01)
}

// TestCoreCompletionContactAlternatives 任一联系方式都算数
func TestCoreCompletionContactAlternatives(t *testing.T) {
	rec := &types.InternalRecord{}
	rec.Contacts.Mobile = "+393331234567"
	assert.InDelta(t, 14.3, CoreCompletion(rec), 0.01)
}

// TestCompletion 全局presence分数的序关系与范围
func TestCompletion(t *testing.T) {
	empty := Completion(&types.InternalRecord{})
	full := Completion(fullRecord())

	assert.GreaterOrEqual(t, empty, 0.0)
	assert.LessOrEqual(t, full, 100.0)
	assert.Greater(t, full, empty, "填充越多分数越高")

	assert.InDelta(t, 0.0, Completion(nil), 0.01)
}

// TestCountFields 递归统计规则
func TestCountFields(t *testing.T) {
	tot, filled := countFields(map[string]interface{}{
		"a": "x",
		"b": "",
		"c": []interface{}{},
		"d": []interface{}{"y", ""},
		"e": nil,
		"f": 42.0,
	})
	assert.Equal(t, 7, tot, "空列表计1个字段，非空列表按元素展开")
	assert.Equal(t, 3, filled, "x、y和数字已填")
}

// TestCompute 打包结果
func TestCompute(t *testing.T) {
	s := Compute(fullRecord())
	assert.InDelta(t, 100.0, s.Core, 0.01)
	assert.Greater(t, s.Global, 0.0)
}
