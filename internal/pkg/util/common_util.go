package util

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var slugInvalidRegex = regexp.MustCompile(`[^\w\s-]`)
var slugSpaceRegex = regexp.MustCompile(`\s+`)

// Slugify 由标题生成 URL slug
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugInvalidRegex.ReplaceAllString(slug, "")
	slug = slugSpaceRegex.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// SlugWithSuffix 在 slug 冲突时追加随机后缀
func SlugWithSuffix(slug string) string {
	return slug + "-" + strconv.Itoa(rand.Intn(1000))
}

// GetMidnightIn 将时刻归一到给定时区的当日零点。
// 日桶边界必须使用统一的基准时区，禁止依赖服务器本地时区
func GetMidnightIn(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// PtrUint64 用于将 uint64 转换为 *uint64
func PtrUint64(i uint64) *uint64 {
	return &i
}
