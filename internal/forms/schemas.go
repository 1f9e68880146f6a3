package forms

import (
	"skate_admin/internal/domain"
)

func SpotSchema() Schema {
	return Schema{Fields: []Field{
		{Name: "name", Label: "Le nom", Kind: Text, Rules: []Rule{Required(), MinLength(3), MaxLength(100)}},
		{Name: "description", Label: "La description", Kind: Text, Rules: []Rule{Required(), MinLength(10), MaxLength(1000)}},
		{Name: "address", Label: "L'adresse", Kind: Text, Rules: []Rule{Required(), MinLength(5), MaxLength(200)}},
		{Name: "city", Label: "La ville", Kind: Text, Rules: []Rule{Required(), MinLength(2), MaxLength(100)}},
		{Name: "zipCode", Label: "Le code postal", Kind: Text, Rules: []Rule{
			Required(), Pattern(`^\d{5}$`).WithMessage("Le code postal doit contenir 5 chiffres"),
		}},
		{Name: "latitude", Label: "La latitude", Kind: Float, Default: "0", Rules: []Rule{Required(), Min(-90), Max(90)}},
		{Name: "longitude", Label: "La longitude", Kind: Float, Default: "0", Rules: []Rule{Required(), Min(-180), Max(180)}},
		{Name: "isIndoor", Label: "Le type de spot", Kind: Bool, Rules: []Rule{Required()}, Options: []Option{
			{Value: "false", Label: "Extérieur (Street / Outdoor)"},
			{Value: "true", Label: "Intérieur (Indoor)"},
		}},
		{Name: "isActive", Label: "Le statut", Kind: Bool, Default: "true", Rules: []Rule{Required()}, Options: []Option{
			{Value: "true", Label: "Actif (visible sur l'application)"},
			{Value: "false", Label: "Inactif (masqué)"},
		}},
	}}
}

func ServiceSchema() Schema {
	types := make([]Option, 0, len(domain.ServiceTypes))
	for _, t := range domain.ServiceTypes {
		types = append(types, Option{Value: string(t), Label: t.Label()})
	}
	return Schema{Fields: []Field{
		{Name: "name", Label: "Le nom", Kind: Text, Rules: []Rule{Required(), MinLength(3), MaxLength(100)}},
		{Name: "description", Label: "La description", Kind: Text, Rules: []Rule{Required(), MinLength(10), MaxLength(1000)}},
		{Name: "type", Label: "Le type", Kind: Enum, Options: types, Rules: []Rule{Required()}},
		{Name: "durationMinutes", Label: "La durée", Kind: Int, Default: "0", Rules: []Rule{Required(), Min(1)}, Help: "en minutes"},
		{Name: "basePriceCents", Label: "Le prix", Kind: Int, Default: "0", Rules: []Rule{Required(), Min(0)}, Help: "en centimes"},
		{Name: "isActive", Label: "Le statut", Kind: Bool, Default: "true", Rules: []Rule{Required()}, Options: []Option{
			{Value: "true", Label: "Actif (visible et réservable)"},
			{Value: "false", Label: "Inactif (masqué)"},
		}},
	}}
}

func InstructorSchema() Schema {
	specs := make([]Option, 0, len(domain.Specialties))
	for _, s := range domain.Specialties {
		specs = append(specs, Option{Value: string(s), Label: s.Label()})
	}
	return Schema{Fields: []Field{
		{Name: "firstname", Label: "Le prénom", Kind: Text, Rules: []Rule{Required(), MinLength(2), MaxLength(50)}},
		{Name: "lastname", Label: "Le nom", Kind: Text, Rules: []Rule{Required(), MinLength(2), MaxLength(50)}},
		{Name: "email", Label: "L'email", Kind: Text, Rules: []Rule{
			Required().WithMessage("L'adresse email est requise"),
			Email().WithMessage("L'adresse email n'est pas valide"),
			MaxLength(100).WithMessage("L'email ne peut pas dépasser 100 caractères"),
		}},
		{Name: "phone", Label: "Le téléphone", Kind: Text, Rules: []Rule{
			MaxLength(15),
			Pattern(`^[+]?[0-9\s-]{0,15}$`).WithMessage("Le numéro de téléphone n'est pas valide"),
		}},
		{Name: "specialty", Label: "La spécialité", Kind: Enum, Options: specs},
		{Name: "yearsOfExperience", Label: "L'expérience", Kind: Int, Rules: []Rule{Min(0), Max(50)}, Help: "en années"},
	}}
}
