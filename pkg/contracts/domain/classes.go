package domain

import (
	"fmt"
	"strconv"
)

// NoDescription is returned for class codes missing from the catalog.
const NoDescription = "설명 없음"

// ClassCatalog maps NICE class keys to human-readable descriptions.
// It is built once and never modified.
type ClassCatalog struct {
	long  map[string]string
	short map[string]string
}

// NewClassCatalog copies the given tables into an immutable catalog.
// short may be nil, in which case the long descriptions are used for labels.
func NewClassCatalog(long, short map[string]string) *ClassCatalog {
	c := &ClassCatalog{
		long:  make(map[string]string, len(long)),
		short: make(map[string]string, len(short)),
	}
	for k, v := range long {
		c.long[k] = v
	}
	for k, v := range short {
		c.short[k] = v
	}
	return c
}

// DefaultClassCatalog returns the catalog of the commonly filed NICE classes.
func DefaultClassCatalog() *ClassCatalog {
	return NewClassCatalog(niceDescriptions, niceShortDescriptions)
}

// Describe returns the description for a class key, or NoDescription.
func (c *ClassCatalog) Describe(key string) string {
	if desc, ok := c.long[key]; ok {
		return desc
	}
	return NoDescription
}

// ShortDescribe returns the chart description for a class key, or "" when unknown.
func (c *ClassCatalog) ShortDescribe(key string) string {
	if desc, ok := c.short[key]; ok {
		return desc
	}
	if desc, ok := c.long[key]; ok {
		return desc
	}
	return ""
}

// Has reports whether the key is in the catalog.
func (c *ClassCatalog) Has(key string) bool {
	_, ok := c.long[key]
	return ok
}

// Label formats a class code for display, e.g. "35 (광고/경영관리)".
func (c *ClassCatalog) Label(key string) string {
	return fmt.Sprintf("%s (%s)", key, c.Describe(key))
}

// ChartLabel formats a class code as a two-line chart tick, e.g. "9류\n(과학/전자/SW)".
func (c *ClassCatalog) ChartLabel(code int) string {
	key := strconv.Itoa(code)
	if desc := c.ShortDescribe(key); desc != "" {
		return fmt.Sprintf("%s류\n(%s)", key, desc)
	}
	return key + "류"
}

var niceDescriptions = map[string]string{
	"1": "화학품", "2": "도료/염료", "3": "화장품/세정제", "4": "산업용 유지",
	"5": "약제/의약품/위생재", "6": "금속제품", "7": "기계/공작기계", "8": "수공구",
	"9": "과학/전자/컴퓨터 하드웨어 및 소프트웨어", "10": "의료용 기기/용품", "11": "조명/냉난방/건조 장치",
	"12": "탈것", "14": "귀금속/보석/시계", "16": "종이/문구", "18": "피혁/가죽제품",
	"20": "가구/거울/액자", "21": "가정용구/유리/자기", "25": "의류/신발/모자",
	"29": "가공식품/육류/유제품", "30": "커피/차/제과", "31": "농산물/비가공 식품/동물사료",
	"35": "광고/경영관리", "36": "보험/금융", "38": "통신", "41": "교육/오락/스포츠",
	"42": "과학/기술 서비스/IT 서비스", "43": "음식점업/임시숙박업", "44": "의료/미용/농업 서비스",
	"45": "법률/보안/개인 서비스", FallbackClassLabel: "기타 분류",
}

var niceShortDescriptions = map[string]string{
	"1": "화학품", "2": "도료/염료", "3": "화장품/세정제", "4": "산업용 유지",
	"5": "약제/의약품", "6": "금속제품", "7": "기계/공작", "8": "수공구",
	"9": "과학/전자/SW", "10": "의료용 기기", "11": "조명/냉난방",
	"12": "탈것", "14": "귀금속/시계", "16": "종이/문구", "18": "피혁/가죽",
	"20": "가구", "21": "가정용구", "25": "의류/신발",
	"29": "식품/육류", "30": "커피/제과", "31": "농산물/사료",
	"35": "광고/경영", "36": "보험/금융", "38": "통신", "41": "교육/오락",
	"42": "SW/기술개발", "43": "음식점/숙박", "44": "의료/미용",
	"45": "법률/보안", FallbackClassLabel: "기타",
}
