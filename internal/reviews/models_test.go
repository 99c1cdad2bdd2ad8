package reviews

import "testing"

// TestReviewInput_Validate verifies the rating bounds and required fields.
func TestReviewInput_Validate(t *testing.T) {
	valid := reviewInput{
		Review: "Unforgettable sunrise at the summit.",
		Rating: 5,
		TourID: "22222222-2222-2222-2222-222222222222",
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid input rejected: %v", err)
	}

	for _, rating := range []int{0, 6, -1} {
		in := valid
		in.Rating = rating
		if err := in.Validate(); err == nil {
			t.Errorf("rating %d should be rejected", rating)
		}
	}

	noText := valid
	noText.Review = ""
	if err := noText.Validate(); err == nil {
		t.Error("expected error for empty review text")
	}

	noTour := valid
	noTour.TourID = ""
	if err := noTour.Validate(); err == nil {
		t.Error("expected error for missing tour id")
	}
}
