package domain

// AnswerDisclaimer is appended to every generated or apologetic QA answer.
const AnswerDisclaimer = "\n\n⚠️ **Medical Disclaimer**: This information is for educational purposes only. " +
	"Always consult with qualified healthcare professionals for medical advice, " +
	"diagnosis, or treatment. Do not use this information as a substitute for " +
	"professional medical care."

// RecommendationDisclaimer accompanies every recommendation result.
const RecommendationDisclaimer = "🏥 MEDICAL DISCLAIMER: These recommendations are for educational purposes only. " +
	"Always consult with qualified healthcare professionals before taking any medication. " +
	"Self-medication can be dangerous and may lead to adverse effects."

// ErrorDisclaimer replaces the disclaimer when a recommendation request degrades.
const ErrorDisclaimer = "An error occurred while processing your request. " +
	"Please consult a healthcare professional."

// RecommendationWarnings are attached to every recommended drug.
func RecommendationWarnings() []string {
	return []string{
		"⚠️ This is for educational purposes only",
		"👨‍⚕️ Always consult a healthcare professional before taking any medication",
		"📋 Verify dosage and interactions with your doctor",
		"🚫 Do not self-medicate based on these recommendations",
	}
}
