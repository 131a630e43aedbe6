package setup

// Default check-in messages for goals missing from the tables.
const (
	DefaultFriendlyMessage   = "Hi there! 👋 How's your progress going?"
	DefaultAggressiveMessage = "NO MORE DELAYS! What have you accomplished today?"
)

// Completion messages shown on SetupComplete.
const (
	FriendlyCompletion   = "You're all set! Let's start building better habits together. 🌟"
	AggressiveCompletion = "SETUP COMPLETE! Time to crush those bad habits. NO EXCUSES! 💪"
)

var friendlyMessages = map[Goal]string{
	GoalStudy:      "Hey there! 📚 Just checking in on your study progress. Remember, every bit of focused work counts. How's it going?",
	GoalFitness:    "Hi! 💪 Time for a quick fitness check-in. Remember, you're building a stronger you with every workout. How are you feeling?",
	GoalSideHustle: "Hello! 🚀 Checking in on your side hustle journey. Small steps lead to big achievements. What have you worked on today?",
}

var aggressiveMessages = map[Goal]string{
	GoalStudy:      "NO EXCUSES! 📚 Your future self is either thanking you or cursing you right now. Which one is it? Get studying!",
	GoalFitness:    "WAKE UP! 💪 Your body won't transform itself while you're making excuses. GET MOVING NOW!",
	GoalSideHustle: "TIME IS MONEY! 🔥 While you're procrastinating, others are grinding. What's your excuse today?",
}

// FriendlyMessage returns the friendly check-in for goal.
func FriendlyMessage(goal Goal) string {
	if msg, ok := friendlyMessages[goal]; ok {
		return msg
	}
	return DefaultFriendlyMessage
}

// AggressiveMessage returns the aggressive check-in for goal.
func AggressiveMessage(goal Goal) string {
	if msg, ok := aggressiveMessages[goal]; ok {
		return msg
	}
	return DefaultAggressiveMessage
}

// CheckInMessage picks the table by tone. Anything but friendly is aggressive.
func CheckInMessage(goal Goal, tone Tone) string {
	if tone == ToneFriendly {
		return FriendlyMessage(goal)
	}
	return AggressiveMessage(goal)
}

// CompletionMessage returns the SetupComplete headline for tone.
func CompletionMessage(tone Tone) string {
	if tone == ToneFriendly {
		return FriendlyCompletion
	}
	return AggressiveCompletion
}
