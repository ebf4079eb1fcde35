package app

import "strings"

// ocrConfusions исправляет типичные ошибки OCR в слове "Allow" (Al1ow, A11ow, A|low)
var ocrConfusions = strings.NewReplacer("1", "l", "0", "o", "|", "l")

// NormalizeText приводит текст к нижнему регистру, исправляет путаницу символов и схлопывает пробелы.
func NormalizeText(s string) string {
	s = ocrConfusions.Replace(strings.ToLower(s))
	return strings.Join(strings.Fields(s), " ")
}

// ContainsKeyword проверяет вхождение ключевого слова в распознанный текст.
func ContainsKeyword(text, keyword string) bool {
	k := NormalizeText(keyword)
	if k == "" {
		return false
	}
	return strings.Contains(NormalizeText(text), k)
}
