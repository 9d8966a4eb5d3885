package catalog

import "github.com/serenitymassage/clinic-scheduler/internal/models"

// Builtin returns the compiled-in catalog tier: always available, rendered
// instantly, and the effective list whenever the store has nothing better.
func Builtin() []models.Service {
	return []models.Service{
		builtinService(
			"swedish", "Swedish Massage", "60 min", "$85", "🍃",
			"A gentle full-body massage ideal for relaxation and stress management.",
			[]string{"Stress reduction", "Improved circulation", "Muscle tension relief"},
		),
		builtinService(
			"deeptissue", "Deep Tissue", "90 min", "$120", "💪",
			"Targeted pressure to reach deeper layers of muscle and connective tissue.",
			[]string{"Chronic pain relief", "Injury rehabilitation", "Lowered blood pressure"},
		),
		builtinService(
			"aromatherapy", "Aromatherapy", "60 min", "$95", "🌸",
			"Combines soft pressure with therapeutic essential oils for emotional well-being.",
			[]string{"Boosts mood", "Reduces anxiety", "Improves sleep quality"},
		),
		builtinService(
			"sports", "Sports Therapy", "75 min", "$110", "🏃",
			"Focused on preventing and treating injuries for active individuals.",
			[]string{"Greater flexibility", "Pre-event prep", "Faster recovery"},
		),
	}
}

func builtinService(id, name, duration, price, icon, description string, benefits []string) models.Service {
	svc := models.Service{
		ID:          id,
		Name:        name,
		Duration:    duration,
		Price:       price,
		Icon:        icon,
		Description: description,
	}
	svc.SetBenefits(benefits)
	return svc
}
