package validator

import (
	"log"
	"time"

	"fairway_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the project-specific validation tags.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'lesson_time': "HH:MM" 24-hour wall clock.
	mustRegister("lesson_time", validateLessonTime)

	// 'lesson_duration': one of the bookable lesson lengths.
	mustRegister("lesson_duration", validateLessonDuration)

	// 'booking_status': one of the closed booking status set.
	mustRegister("booking_status", validateBookingStatus)
}

func validateLessonTime(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empties
	}
	_, err := time.Parse("15:04", value)
	return err == nil
}

func validateLessonDuration(fl validator.FieldLevel) bool {
	value := fl.Field().Int()
	if value == 0 {
		return true
	}
	for _, d := range models.AllowedDurations {
		if int64(d) == value {
			return true
		}
	}
	return false
}

func validateBookingStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ValidBookingStatus(models.BookingStatus(value))
}
