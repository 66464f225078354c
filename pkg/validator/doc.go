// Package validator provides small, composable validation rules.
//
// Every exported rule constructor returns a Rule that pairs a Check function
// with translation-friendly error metadata. Apply evaluates rules in order and
// aggregates failures into ValidationErrors, which implements error.
//
//	err := validator.Apply(
//		validator.Required("name", req.Name).WithMessage("Missing required field: name"),
//		validator.When(req.Email != "", validator.ValidEmail("email", req.Email)),
//		validator.Digits("phone", req.Phone, 10),
//		validator.Positive("amount", amount),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//		first, _ := verrs.First()
//		// report first.Message, and verrs.Map() as details
//	}
//
// The package is stateless and safe for concurrent use.
package validator
