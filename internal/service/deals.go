package service

import (
	"context"
	"sort"

	"smartpenny/internal/core"
	"smartpenny/internal/log"
	"smartpenny/internal/store"
)

// Deal list sources reported to clients.
const (
	DealSourceStore    = "database"
	DealSourceFallback = "fallback"
)

// fallbackDeals is served when the catalog store is empty or unreachable, so
// a fresh deployment still shows something near campus.
var fallbackDeals = []core.Deal{
	{ID: "1", Name: "Campus Grill", Description: "$5 Student Lunch Special", Category: "American", Distance: "0.2 mi", Hours: "11am-3pm", IsSponsored: true, Rating: 4.5},
	{ID: "2", Name: "Pho House", Description: "15% off with student ID", Category: "Vietnamese", Distance: "0.3 mi", Hours: "10am-9pm", IsSponsored: false, Rating: 4.7},
	{ID: "3", Name: "Pizza Palace", Description: "$8 Large Pizza Mondays", Category: "Italian", Distance: "0.1 mi", Hours: "11am-11pm", IsSponsored: true, Rating: 4.2},
	{ID: "4", Name: "Burrito Bros", Description: "Free chips with any burrito", Category: "Mexican", Distance: "0.4 mi", Hours: "10am-10pm", IsSponsored: false, Rating: 4.4},
	{ID: "5", Name: "Sushi Station", Description: "$12 All-You-Can-Eat Tuesdays", Category: "Japanese", Distance: "0.5 mi", Hours: "11:30am-9pm", IsSponsored: true, Rating: 4.6},
	{ID: "6", Name: "The Daily Grind", Description: "$2 Coffee before 9am", Category: "Cafe", Distance: "0.1 mi", Hours: "6am-8pm", IsSponsored: false, Rating: 4.8},
	{ID: "7", Name: "Wok & Roll", Description: "10% student discount", Category: "Chinese", Distance: "0.3 mi", Hours: "11am-10pm", IsSponsored: false, Rating: 4.3},
	{ID: "8", Name: "Falafel King", Description: "$6 Falafel Wrap Combo", Category: "Mediterranean", Distance: "0.2 mi", Hours: "11am-9pm", IsSponsored: true, Rating: 4.5},
	{ID: "9", Name: "Bagel Barn", Description: "BOGO Bagels Thursdays", Category: "Bakery", Distance: "0.2 mi", Hours: "7am-4pm", IsSponsored: false, Rating: 4.6},
	{ID: "10", Name: "Thai Orchid", Description: "$9 Pad Thai Lunch", Category: "Thai", Distance: "0.4 mi", Hours: "11am-9:30pm", IsSponsored: false, Rating: 4.7},
}

// DealService reads the shared deal catalog. A failing or empty store
// degrades to the built-in fallback list rather than an error.
type DealService struct {
	deals  store.DealStore
	logger *log.Logger
}

func NewDealService(deals store.DealStore, logger *log.Logger) *DealService {
	return &DealService{
		deals:  deals,
		logger: logger.WithComponent(log.ComponentDeals),
	}
}

// ListDeals returns deals sponsored-first, then by rating descending, with
// an optional category filter ("" or "All" means everything). The second
// result names where the list came from.
func (s *DealService) ListDeals(ctx context.Context, category string) ([]core.Deal, string) {
	if category == "All" {
		category = ""
	}

	deals, err := s.deals.ListDeals(ctx, category)
	source := DealSourceStore
	if err != nil {
		s.logger.WarnContext(ctx, "Deal catalog unavailable, serving fallback",
			log.FieldError, err)
		deals = nil
	}
	if len(deals) == 0 {
		deals = filterDeals(fallbackDeals, category)
		source = DealSourceFallback
	}

	sort.SliceStable(deals, func(i, j int) bool {
		if deals[i].IsSponsored != deals[j].IsSponsored {
			return deals[i].IsSponsored
		}
		if deals[i].Rating != deals[j].Rating {
			return deals[i].Rating > deals[j].Rating
		}
		return deals[i].Name < deals[j].Name
	})
	return deals, source
}

func filterDeals(deals []core.Deal, category string) []core.Deal {
	out := make([]core.Deal, 0, len(deals))
	for _, d := range deals {
		if category != "" && d.Category != category {
			continue
		}
		out = append(out, d)
	}
	return out
}
