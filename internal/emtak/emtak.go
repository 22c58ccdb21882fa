// Package emtak maps detailed EMTAK activity codes to the coarse industry
// sections of the Estonian classification of economic activities.
package emtak

import (
	"fmt"
	"strconv"
	"strings"
)

// sectionRange maps an inclusive two-digit code range to a section label.
// Ranges are non-overlapping by construction, so the first match wins.
type sectionRange struct {
	start, end int
	label      string
}

// The 21 EMTAK sections. Gaps between ranges (04, 34, 40, ...) are
// intentional and map to no section.
var sections = []sectionRange{
	{1, 3, "Põllumajandus, metsamajandus ja kalapüük"},
	{5, 9, "Mäetööstus"},
	{10, 33, "Töötlev tööstus"},
	{35, 35, "Elektrienergia, gaasi, auru ja konditsioneeritud õhuga varustamine"},
	{36, 39, "Veevarustus; kanalisatsioon, jäätme- ja saastekäitlus"},
	{41, 43, "Ehitus"},
	{45, 47, "Hulgi- ja jaekaubandus; mootorsõidukite ja mootorrataste remont"},
	{49, 53, "Veondus ja laondus"},
	{55, 56, "Majutus ja toitlustus"},
	{58, 63, "Info ja side"},
	{64, 66, "Finants- ja kindlustustegevus"},
	{68, 68, "Kinnisvaraalane tegevus"},
	{69, 75, "Kutse-, teadus- ja tehnikaalane tegevus"},
	{77, 82, "Haldus- ja abitegevused"},
	{84, 84, "Avalik haldus ja riigikaitse; kohustuslik sotsiaalkindlustus"},
	{85, 85, "Haridus"},
	{86, 88, "Tervishoid ja sotsiaalhoolekanne"},
	{90, 93, "Kunst, meelelahutus ja vaba aeg"},
	{94, 96, "Muud teenindavad tegevused"},
	{97, 98, "Kodumajapidamiste kui tööandjate tegevus; kodumajapidamiste oma tarbeks tootmine"},
	{99, 99, "Eksterritoriaalsete organisatsioonide ja üksuste tegevus"},
}

// Section resolves the industry section for a free-form EMTAK code string.
// The leading two digits select the section range; the label is rendered as
// "NN-MM: label" (or "NN: label" for single-code ranges). Commas in label
// text become semicolons because multi-select option names reject commas.
// A code with no declared range, or with fewer than two digits, resolves to
// absent. Never errors.
func Section(code string) (string, bool) {
	digits := digitsOf(code)
	if len(digits) < 2 {
		return "", false
	}

	n, err := strconv.Atoi(digits[:2])
	if err != nil {
		return "", false
	}

	for _, s := range sections {
		if n >= s.start && n <= s.end {
			rangeStr := fmt.Sprintf("%02d-%02d", s.start, s.end)
			if s.start == s.end {
				rangeStr = fmt.Sprintf("%02d", s.start)
			}
			label := strings.ReplaceAll(s.label, ",", ";")
			return fmt.Sprintf("%s: %s", rangeStr, label), true
		}
	}

	return "", false
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
