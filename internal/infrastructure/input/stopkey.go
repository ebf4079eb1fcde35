package input

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// stopKeyPoll период опроса клавиши остановки
const stopKeyPoll = 50 * time.Millisecond

// StopKeyListener ждёт нажатия клавиши остановки
type StopKeyListener interface {
	// Listen блокируется до нажатия клавиши или отмены ctx; при нажатии вызывает onPress один раз
	Listen(ctx context.Context, onPress func()) error
}

// KeyName приводит имя клавиши к виду, принятому в таблицах хуков ("escape" -> "esc").
func KeyName(key string) string {
	k := strings.ToLower(strings.TrimSpace(key))
	if k == "escape" {
		return "esc"
	}
	return k
}

// ParseKey переводит имя клавиши ("esc", "f1".."f12", "pause", буква) в виртуальный код Windows.
func ParseKey(key string) (uint16, error) {
	k := KeyName(key)
	switch k {
	case "esc":
		return 0x1B, nil
	case "pause":
		return 0x13, nil
	case "end":
		return 0x23, nil
	}

	if len(k) >= 2 && k[0] == 'f' && k[1] != '0' {
		if n, err := strconv.Atoi(k[1:]); err == nil && n >= 1 && n <= 12 {
			return uint16(0x70 + n - 1), nil // VK_F1 = 0x70
		}
	}
	if len(k) == 1 && k[0] >= 'a' && k[0] <= 'z' {
		return uint16(k[0] - 'a' + 'A'), nil
	}
	return 0, fmt.Errorf("unsupported stop key %q", key)
}
