package services

import "fmt"

// The scoring engine is a pure function over the four wellness axes.
// Missing-field defaults (sleep=7, steps=5000, calories=2000, stress=5)
// are applied by the caller, never in here.

// CalculateWellnessScore maps the four axes to a 0-100 composite. Each
// axis contributes up to 25 points.
func CalculateWellnessScore(sleepHours float64, steps, calories, stressLevel int) float64 {
  score := 0.0

  switch {
  case sleepHours >= 7 && sleepHours <= 9:
    score += 25
  case sleepHours >= 6 && sleepHours < 7:
    score += 15
  case sleepHours > 9:
    score += 10
  default:
    score += 5
  }

  switch {
  case steps >= 10000:
    score += 25
  case steps >= 7000:
    score += 20
  case steps >= 5000:
    score += 15
  default:
    score += 5
  }

  switch {
  case calories >= 1800 && calories <= 2500:
    score += 25
  case calories >= 1500 && calories < 1800:
    score += 15
  case calories > 2500 && calories <= 3000:
    score += 15
  default:
    score += 5
  }

  stressScore := 25 - float64(stressLevel)*2.5
  if stressScore < 0 {
    stressScore = 0
  }
  score += stressScore

  if score > 100 {
    score = 100
  }
  if score < 0 {
    score = 0
  }
  return score
}

// GenerateRecommendations emits advisory strings in a fixed order: sleep,
// steps, calories, stress, then overall score. The order matters to
// clients rendering the list.
func GenerateRecommendations(sleepHours float64, steps, calories, stressLevel int, score float64) []string {
  var recommendations []string

  if sleepHours < 7 {
    recommendations = append(recommendations, fmt.Sprintf("Try to get at least 7-9 hours of sleep. You're currently at %g hours.", sleepHours))
  } else if sleepHours > 9 {
    recommendations = append(recommendations, fmt.Sprintf("You might be oversleeping at %g hours. Aim for 7-9 hours.", sleepHours))
  }

  if steps < 10000 {
    walkMinutes := (10000 - steps) / 2000 * 10
    recommendations = append(recommendations, fmt.Sprintf("Aim for 10,000 steps daily. You're at %d steps. Try adding a %d-minute walk.", steps, walkMinutes))
  }

  if calories < 1800 {
    recommendations = append(recommendations, "Your calorie intake seems low. Make sure you're eating enough to maintain energy.")
  } else if calories > 2500 {
    recommendations = append(recommendations, "Consider moderating your calorie intake if weight management is a goal.")
  }

  if stressLevel > 6 {
    recommendations = append(recommendations, fmt.Sprintf("Your stress level is high (%d/10). Try meditation, deep breathing, or a relaxing activity.", stressLevel))
  }

  if score < 50 {
    recommendations = append(recommendations, "Your overall wellness score is below average. Focus on improving sleep, activity, and stress management.")
  } else if score >= 75 {
    recommendations = append(recommendations, "Great job! Your wellness score is excellent. Keep up the healthy habits!")
  }

  if len(recommendations) == 0 {
    return []string{"You're doing well! Keep maintaining your healthy lifestyle."}
  }
  return recommendations
}
