package services

import (
	"context"
	"fmt"

	"github.com/joshua-takyi/eventtickets/internal/models"
	"github.com/shopspring/decimal"
)

func demoTicket(ru, fr string, price int64) models.TicketTypeInput {
	p := decimal.NewFromInt(price)
	return models.TicketTypeInput{
		Name:  models.Localized{"ru": ru, "fr": fr},
		Price: &p,
	}
}

var demoEvents = []models.EventInput{
	{
		Title: models.Localized{"ru": "Концерт классической музыки", "fr": "Concert de musique classique"},
		Description: models.Localized{
			"ru": "Вечер классической музыки с произведениями Чайковского и Рахманинова в исполнении симфонического оркестра.",
			"fr": "Soirée de musique classique avec des œuvres de Tchaïkovski et Rachmaninov interprétées par l'orchestre symphonique.",
		},
		Location: models.Localized{"ru": "Концертный зал «Филармония»", "fr": "Salle de concert «Philharmonie»"},
		Date:     "2025-02-15",
		Time:     "19:00",
		Category: "music",
		Image:    "🎼",
		TicketTypes: []models.TicketTypeInput{
			demoTicket("Взрослый", "Adulte", 2500),
			demoTicket("Студенческий", "Étudiant", 1500),
			demoTicket("Детский", "Enfant", 1000),
		},
	},
	{
		Title: models.Localized{"ru": "Театральная постановка «Гамлет»", "fr": "Représentation théâtrale «Hamlet»"},
		Description: models.Localized{
			"ru": "Классическая трагедия Шекспира в современной интерпретации.",
			"fr": "La tragédie classique de Shakespeare dans une interprétation moderne.",
		},
		Location: models.Localized{"ru": "Драматический театр", "fr": "Théâtre dramatique"},
		Date:     "2025-02-20",
		Time:     "18:30",
		Category: "theater",
		Image:    "🎭",
		TicketTypes: []models.TicketTypeInput{
			demoTicket("Партер", "Parterre", 3000),
			demoTicket("Амфитеатр", "Amphithéâtre", 2000),
			demoTicket("Балкон", "Balcon", 1500),
		},
	},
	{
		Title: models.Localized{"ru": "Выставка современного искусства", "fr": "Exposition d'art contemporain"},
		Description: models.Localized{
			"ru": "Более 100 произведений живописи, скульптуры и инсталляций современных художников.",
			"fr": "Plus de 100 œuvres de peinture, sculpture et installations d'artistes contemporains.",
		},
		Location: models.Localized{"ru": "Галерея современного искусства", "fr": "Galerie d'art contemporain"},
		Date:     "2025-02-25",
		Time:     "10:00",
		Category: "art",
		Image:    "🎨",
		TicketTypes: []models.TicketTypeInput{
			demoTicket("Полный билет", "Billet complet", 800),
			demoTicket("Студенческий", "Étudiant", 400),
			demoTicket("Групповой (от 5 чел.)", "Groupe (à partir de 5 pers.)", 600),
		},
	},
}

// SeedDemoCatalog adds the demo events whose title is not in the catalog
// yet and returns how many were created.
func (cs *CatalogService) SeedDemoCatalog(ctx context.Context) (int, error) {
	existing, err := cs.ListActiveEvents(ctx)
	if err != nil {
		return 0, err
	}
	titles := make(map[string]bool, len(existing))
	for _, e := range existing {
		titles[e.Title.Get(cs.langs.Default, "")] = true
	}

	created := 0
	for _, in := range demoEvents {
		if titles[in.Title.Get(cs.langs.Default, "")] {
			continue
		}
		if _, err := cs.CreateEvent(ctx, in); err != nil {
			return created, fmt.Errorf("seed %q: %w", in.Title.Get(cs.langs.Default, ""), err)
		}
		created++
	}
	return created, nil
}
