package alert

import (
	"fmt"
	"time"

	"github.com/agridesk/fieldbook/internal/clock"
	"github.com/agridesk/fieldbook/internal/domain"
)

// lowStockAlerts evaluates the derived stock positions. Quantity
// exactly zero is urgent; anything else at or below the threshold is
// high, including a negative quantity from an inconsistent log.
func lowStockAlerts(farmID string, stocks []domain.CurrentStock) []domain.Alert {
	var alerts []domain.Alert
	for _, stock := range stocks {
		if !stock.IsLowStock {
			continue
		}

		alert := domain.Alert{
			FarmID:    farmID,
			Type:      domain.AlertLowStock,
			RelatedID: stock.ItemID,
		}
		if stock.CurrentQuantity == 0 {
			alert.Priority = domain.PriorityUrgent
			alert.Title = TitleOutOfStock
			alert.Message = fmt.Sprintf(MsgFmtOutOfStock, stock.ItemName)
		} else {
			alert.Priority = domain.PriorityHigh
			alert.Title = TitleLowStock
			alert.Message = fmt.Sprintf(MsgFmtLowStock,
				stock.ItemName, stock.CurrentQuantity, stock.Unit, stock.MinThreshold, stock.Unit)
		}
		alerts = append(alerts, alert)
	}
	return alerts
}

// fertilizerAlerts flags active crops whose fertilizer stage date falls
// within the lead window. Due today is high, coming up is medium.
func fertilizerAlerts(farmID string, crops []domain.Crop, today time.Time) []domain.Alert {
	var alerts []domain.Alert
	for _, crop := range crops {
		if !crop.Active() || crop.FertilizerStageDate == nil {
			continue
		}

		daysUntil := clock.DaysBetween(today, *crop.FertilizerStageDate)
		if daysUntil < 0 || daysUntil > domain.FertilizerLeadDays {
			continue
		}

		alert := domain.Alert{
			FarmID:    farmID,
			Type:      domain.AlertFertilizerStage,
			Title:     TitleFertilizerDue,
			RelatedID: crop.ID,
		}
		if daysUntil == 0 {
			alert.Priority = domain.PriorityHigh
			alert.Message = fmt.Sprintf(MsgFmtFertilizerToday, crop.Name)
		} else {
			alert.Priority = domain.PriorityMedium
			alert.Message = fmt.Sprintf(MsgFmtFertilizerSoon, crop.Name, daysUntil)
		}
		alerts = append(alerts, alert)
	}
	return alerts
}

// pesticideAlerts flags active crops whose days since last application
// fall inside the window around the configured interval. Overdue or due
// today is high, approaching is medium.
func pesticideAlerts(farmID string, crops []domain.Crop, today time.Time) []domain.Alert {
	var alerts []domain.Alert
	for _, crop := range crops {
		if !crop.Active() || crop.PesticideIntervalDays <= 0 || crop.LastPesticideDate == nil {
			continue
		}

		daysSince := clock.DaysBetween(*crop.LastPesticideDate, today)
		if daysSince < crop.PesticideIntervalDays-domain.PesticideWindowDays ||
			daysSince > crop.PesticideIntervalDays+domain.PesticideWindowDays {
			continue
		}

		alert := domain.Alert{
			FarmID:    farmID,
			Type:      domain.AlertPesticideInterval,
			Title:     TitlePesticideDue,
			RelatedID: crop.ID,
		}
		remaining := crop.PesticideIntervalDays - daysSince
		if remaining <= 0 {
			alert.Priority = domain.PriorityHigh
			alert.Message = fmt.Sprintf(MsgFmtPesticideOver, crop.Name, crop.PesticideIntervalDays, daysSince)
		} else {
			alert.Priority = domain.PriorityMedium
			alert.Message = fmt.Sprintf(MsgFmtPesticideSoon, crop.Name, remaining)
		}
		alerts = append(alerts, alert)
	}
	return alerts
}

// expiryAlert evaluates one incoming movement's expiry date. Returns
// nil when the movement is outside the warning window.
func expiryAlert(farmID, itemName string, movement domain.StockLog, today time.Time) *domain.Alert {
	if movement.Type != domain.MovementIn || movement.ExpiryDate == nil {
		return nil
	}

	daysUntil := clock.DaysBetween(today, *movement.ExpiryDate)
	if daysUntil < 0 || daysUntil > domain.ExpiryWarningDays {
		return nil
	}

	alert := &domain.Alert{
		FarmID:    farmID,
		Type:      domain.AlertExpiryWarning,
		Title:     TitleExpiryWarning,
		RelatedID: movement.ID,
	}
	batch := movement.BatchNumber
	if batch == "" {
		batch = "(no batch)"
	}
	if daysUntil <= domain.ExpiryUrgentDays {
		alert.Priority = domain.PriorityHigh
		alert.Message = fmt.Sprintf(MsgFmtExpiryUrgent, itemName, batch, daysUntil)
	} else {
		alert.Priority = domain.PriorityMedium
		alert.Message = fmt.Sprintf(MsgFmtExpirySoon, itemName, batch, daysUntil)
	}
	return alert
}

// CheckRainProbability returns a transient spray advisory when the
// probability crosses the threshold. The advisory is never persisted
// and never deduplicated; nil means conditions are fine.
func CheckRainProbability(farmID string, probability int) *domain.Alert {
	if probability < domain.RainProbabilityThreshold {
		return nil
	}
	return &domain.Alert{
		FarmID:   farmID,
		Type:     domain.AlertHighRainChance,
		Title:    TitleRainAdvisory,
		Message:  fmt.Sprintf(MsgFmtRainAdvisory, probability),
		Priority: domain.PriorityHigh,
	}
}
