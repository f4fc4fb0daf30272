package pubsub

import (
	"strconv"

	"tracker/internal/domain/constants"
	"tracker/internal/domain/service"
)

func eventAttributes(event *service.OTPEvent) map[string]string {
	attributes := map[string]string{
		constants.AttrEventID:   event.EventID,
		constants.AttrEventType: constants.EventTypeOTPIssued,
		constants.AttrUserID:    strconv.FormatInt(event.UserID, 10),
	}
	if event.RequestID != "" {
		attributes[constants.AttrRequestID] = event.RequestID
	}

	return attributes
}
