package get_available_slots

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/trillium/massage-availability/internal/domain"
	"github.com/trillium/massage-availability/internal/timeutil"
	getAvailableSlots "github.com/trillium/massage-availability/internal/usecase/get_available_slots"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Slug             string                  `json:"slug"`
	Title            string                  `json:"title"`
	Start            string                  `json:"start"`
	End              string                  `json:"end"`
	IsExpired        bool                    `json:"isExpired"`
	TimeZone         string                  `json:"timeZone"`
	Duration         int                     `json:"duration"`
	Durations        []int                   `json:"durations"`
	Pricing          map[int]int             `json:"pricing"`
	Offers           []OfferResponse         `json:"offers"`
	OffersByDuration map[int][]OfferResponse `json:"offersByDuration,omitempty"`
}

// OfferResponse модель предложения: абсолютное время и локальные дата/время владельца
type OfferResponse struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Location  string `json:"location,omitempty"`
	ClassName string `json:"className,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response, loc *time.Location) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Slug:      resp.Slug,
		Title:     resp.Config.Title,
		Start:     resp.StartDate,
		End:       resp.EndDate,
		IsExpired: resp.IsExpired,
		TimeZone:  resp.TimeZone,
		Duration:  resp.Duration,
		Durations: resp.Durations,
		Pricing:   resp.Config.Pricing,
		Offers:    toOffers(resp.Offers, loc),
	}
	if out.Durations == nil {
		out.Durations = []int{}
	}
	if resp.OffersByDuration != nil {
		out.OffersByDuration = make(map[int][]OfferResponse, len(resp.OffersByDuration))
		for d, offers := range resp.OffersByDuration {
			out.OffersByDuration[d] = toOffers(offers, loc)
		}
	}
	return out
}

func toOffers(offers []domain.Offer, loc *time.Location) []OfferResponse {
	out := make([]OfferResponse, len(offers))
	for i, o := range offers {
		local := timeutil.FormatLocalIn(o.Start, loc)
		out[i] = OfferResponse{
			Start:     o.Start.In(loc).Format(time.RFC3339),
			End:       o.End.In(loc).Format(time.RFC3339),
			Date:      local.Date,
			Time:      local.Time,
			Location:  o.Location,
			ClassName: o.ClassName,
		}
	}
	return out
}

// ErrOverrideNotAllowed возвращается, когда анонимный запрос пытается
// переопределить ограничения владельца
var ErrOverrideNotAllowed = errors.New("override requires admin token")

// restrictedOverrides ключи, меняющие lead time, акцию и контейнеры слага
var restrictedOverrides = []string{"leadTime", "promoEndDate", "eventContainer"}

// ToUseCaseRequest создает запрос use case из query параметров
// privileged - запрос предъявил admin token; без него restrictedOverrides запрещены
func ToUseCaseRequest(q url.Values, privileged bool) (*getAvailableSlots.Request, error) {
	if !privileged {
		for _, key := range restrictedOverrides {
			if q.Has(key) {
				return nil, fmt.Errorf("%w: %s", ErrOverrideNotAllowed, key)
			}
		}
	}

	req := &getAvailableSlots.Request{
		Slug:      strings.TrimSpace(q.Get("slug")),
		StartDate: q.Get("start"),
		EndDate:   q.Get("end"),
	}

	var err error
	if req.Duration, err = optionalInt(q, "duration"); err != nil {
		return nil, err
	}
	if req.Multi, err = optionalBool(q, "multi"); err != nil {
		return nil, err
	}
	if req.Strict, err = optionalBool(q, "strict"); err != nil {
		return nil, err
	}

	// переопределения конфигурации слага
	if req.Overrides.LeadTimeMinimum, err = optionalInt(q, "leadTime"); err != nil {
		return nil, err
	}
	req.Overrides.Location = optionalString(q, "location")
	req.Overrides.PromoEndDate = optionalString(q, "promoEndDate")
	req.Overrides.EventContainer = optionalString(q, "eventContainer")

	return req, nil
}

func optionalInt(q url.Values, key string) (*int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", key)
	}
	return &v, nil
}

func optionalBool(q url.Values, key string) (bool, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean", key)
	}
	return v, nil
}

func optionalString(q url.Values, key string) *string {
	if !q.Has(key) {
		return nil
	}
	v := strings.TrimSpace(q.Get(key))
	return &v
}
