package attendanceprovider

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// Cutoff время начала рабочего дня, отметка позже него считается опозданием
type Cutoff struct {
	Hour   int
	Minute int
}

func ParseCutoff(value string) (Cutoff, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return Cutoff{}, errors.Errorf("некорректное время начала рабочего дня %q, ожидается ЧЧ:ММ", value)
	}
	return Cutoff{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (c Cutoff) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// IsLate время прихода в часовом поясе loc строго позже cutoff
func IsLate(checkIn time.Time, cutoff Cutoff, loc *time.Location) bool {
	local := checkIn.In(loc)
	limit := time.Date(local.Year(), local.Month(), local.Day(), cutoff.Hour, cutoff.Minute, 0, 0, loc)
	return local.After(limit)
}
