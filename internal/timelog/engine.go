package timelog

import (
	"math"
	"time"
)

const (
	StatusIncomplete = "Incomplete"
	StatusCompleted  = "Completed"

	// シフト境界（設定TZで評価した時刻）
	pmBoundaryHour = 12
	otBoundaryHour = 17

	// 自動退勤で埋める固定ラベル
	amCloseLabel = "12:00 PM"
	pmCloseLabel = "05:00 PM"
)

// apply は1回の打刻を log に反映して結果メッセージを返す。
// 永続化は行わない純粋な遷移ロジック。now は設定TZに変換済みであること。
//
// フィールドは amIn → amOut → pmIn → pmOut → otIn → otOut の順に
// 一度だけ埋まり、クリアされない。どこまで埋まっているかが状態そのもの。
func apply(log *TimeLog, now time.Time) (string, error) {
	label := now.Format(TimeLayout)
	hour := now.Hour()

	// 当日初打刻: 正午前なら AM In、以降なら PM In
	if isFresh(log) {
		if hour < pmBoundaryHour {
			log.AmIn = &label
		} else {
			log.PmIn = &label
		}
		log.Status = StatusIncomplete
		recomputeTotal(log)
		if log.AmIn != nil {
			return "AM In Logged", nil
		}
		return "PM In Logged", nil
	}

	// 退勤の打ち忘れを境界ラベルで補正してから今回の打刻を判定する
	autoClose(log, now)

	var message string
	switch {
	case log.AmIn != nil && log.AmOut == nil && hour < pmBoundaryHour:
		log.AmOut = &label
		message = "AM Out Logged"

	case log.PmIn == nil:
		if hour < pmBoundaryHour {
			return "", ErrSequence("PM shift starts at 12:00 PM")
		}
		log.PmIn = &label
		message = "PM In Logged"

	case log.PmOut == nil:
		// 17:00 以降の未退勤は autoClose が先に境界で締めるため、ここは常に打刻時刻。
		log.PmOut = &label
		log.Status = StatusCompleted
		message = "PM Out Logged"

	default:
		// 通常シフトは閉じている。残業は 17:00 以降のみ。
		if hour < otBoundaryHour {
			return "", ErrSequence("Overtime starts after 5:00 PM")
		}
		switch {
		case log.OtIn == nil:
			log.OtIn = &label
			log.Status = StatusIncomplete
			message = "Overtime Started"
		case log.OtOut == nil:
			log.OtOut = &label
			log.Status = StatusCompleted
			message = "Overtime Finished"
		default:
			return "", ErrComplete("All logs completed for today")
		}
	}

	recomputeTotal(log)
	return message, nil
}

// autoClose は次のシフト窓が開いた後も残っている Out を固定ラベルで埋める。
// あくまで補正であり、今回の打刻そのものではない。
func autoClose(log *TimeLog, now time.Time) {
	hour := now.Hour()
	if log.AmIn != nil && log.AmOut == nil && hour >= pmBoundaryHour {
		s := amCloseLabel
		log.AmOut = &s
	}
	if log.PmIn != nil && log.PmOut == nil && hour >= otBoundaryHour {
		s := pmCloseLabel
		log.PmOut = &s
		log.Status = StatusCompleted
	}
}

func isFresh(log *TimeLog) bool {
	return log.AmIn == nil && log.AmOut == nil &&
		log.PmIn == nil && log.PmOut == nil &&
		log.OtIn == nil && log.OtOut == nil
}

// recomputeTotal は3シフトの実働合計を再計算する。毎回の更新後に呼ぶ。
func recomputeTotal(log *TimeLog) {
	total := shiftDuration(log.AmIn, log.AmOut) +
		shiftDuration(log.PmIn, log.PmOut) +
		shiftDuration(log.OtIn, log.OtOut)
	log.TotalHours = math.Round(total*100) / 100
}

// shiftDuration は In/Out のラベルを同一日付に固定してパースし時間差を返す。
// 片方でも未打刻なら 0。負になった場合（ラベル上 Out が In より前）は
// +24h する。ラベル表記の曖昧さへの耐性であり、実際の日跨ぎ勤務はない。
func shiftDuration(in, out *string) float64 {
	if in == nil || out == nil {
		return 0
	}
	s, err := time.Parse(TimeLayout, *in)
	if err != nil {
		return 0
	}
	e, err := time.Parse(TimeLayout, *out)
	if err != nil {
		return 0
	}
	diff := e.Sub(s).Hours()
	if diff < 0 {
		diff += 24
	}
	return diff
}
