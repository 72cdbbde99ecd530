package catalog

// The catalog is intentionally small and equipment-light: the kiosk targets
// gym-floor and bodyweight movements that need no per-user calibration.
var exercises = []Exercise{
	{
		ID:   "chest-pushup",
		Name: "Push-Up",
		Description: `Fundamental bodyweight exercise for the chest, shoulders and triceps.

## Form
- Hands at shoulder width, body in a straight line from head to heels.
- Lower under control until the chest nearly touches the floor.
- Press back up without letting the hips sag or pike.`,
		Focus:        []string{"chest", "triceps"},
		MuscleGroups: []string{"Chest", "Triceps", "Shoulders"},
		Difficulty:   "intermediate",
		Equipment:    nil,
		Sets:         3,
		Reps:         "8-12",
		RestTime:     "60s",
		Instructions: []string{
			"Start in a plank with hands at shoulder width",
			"Keep the body aligned from head to heels",
			"Lower under control until the chest nearly touches the floor",
			"Press back to the starting position",
			"Keep the core braced throughout",
		},
		Tips: []string{
			"Drop to the knees if the full version is too hard",
			"Do not let the hips rise or sink",
			"Exhale on the way up",
		},
	},
	{
		ID:   "chest-bench-press",
		Name: "Bench Press",
		Description: `Barbell press performed lying on a flat bench. The main loaded chest movement in the catalog.

## Form
- Medium grip, bar over the mid chest.
- Lower under control to the chest, press back up to lockout.`,
		Focus:        []string{"chest"},
		MuscleGroups: []string{"Chest", "Triceps", "Shoulders"},
		Difficulty:   "intermediate",
		Equipment:    []string{"bench", "barbell", "plates"},
		Sets:         3,
		Reps:         "8-12",
		RestTime:     "60-90s",
		Instructions: []string{
			"Lie on the bench with feet flat on the floor",
			"Grip the bar slightly wider than shoulder width",
			"Lower the bar under control to the mid chest",
			"Press the bar back up until the arms are extended",
		},
		Tips: []string{
			"Adjust the load to your capacity",
			"Keep the shoulder blades pulled together",
		},
	},
	{
		ID:   "triceps-chair-dip",
		Name: "Chair Dip",
		Description: `Triceps exercise using a chair or bench for support. Good loaded alternative when no cable machine is free.`,
		Focus:        []string{"triceps", "shoulders"},
		MuscleGroups: []string{"Triceps", "Shoulders"},
		Difficulty:   "intermediate",
		Equipment:    []string{"chair"},
		Sets:         3,
		Reps:         "10-12",
		RestTime:     "60s",
		Instructions: []string{
			"Sit on the edge of the chair with hands beside the hips",
			"Slide the body forward off the seat",
			"Lower by bending the elbows",
			"Press back up using the triceps",
		},
		Tips: []string{
			"Keep the elbows close to the body",
			"Do not descend past the point of comfort",
		},
	},
	{
		ID:   "back-bottle-row",
		Name: "Bent-Over Row",
		Description: `Row for the upper back, performed bent over with a barbell, dumbbells or filled water bottles.

## Form
- Hinge at the hips with a flat back.
- Pull the elbows back and squeeze the shoulder blades together.`,
		Focus:        []string{"back", "biceps"},
		MuscleGroups: []string{"Back", "Biceps"},
		Difficulty:   "beginner",
		Equipment:    []string{"dumbbells"},
		Sets:         3,
		Reps:         "8-12",
		RestTime:     "60-90s",
		Instructions: []string{
			"Hinge the torso forward with a flat back",
			"Hold the weights with arms extended",
			"Pull the elbows back past the torso",
			"Squeeze the shoulder blades at the top",
		},
		Tips: []string{
			"Keep the core braced",
			"Do not swing the body for momentum",
		},
	},
	{
		ID:   "back-superman",
		Name: "Superman",
		Description: `Floor extension strengthening the lower back and glutes. No equipment needed.`,
		Focus:        []string{"back"},
		MuscleGroups: []string{"Back", "Glutes"},
		Difficulty:   "beginner",
		Equipment:    nil,
		Sets:         3,
		Reps:         "10-12",
		RestTime:     "45s",
		Instructions: []string{
			"Lie face down with arms extended forward",
			"Raise the chest and legs at the same time",
			"Hold for two seconds and lower",
		},
		Tips: []string{
			"Do not strain the neck",
			"Move slowly and under control",
		},
	},
	{
		ID:   "back-lat-pulldown",
		Name: "Lat Pulldown",
		Description: `Cable pulldown for back width. Pull the bar to chest height with a straight back.`,
		Focus:        []string{"back", "biceps"},
		MuscleGroups: []string{"Back", "Biceps"},
		Difficulty:   "beginner",
		Equipment:    []string{"high pulley"},
		Sets:         3,
		Reps:         "8-12",
		RestTime:     "60-90s",
		Instructions: []string{
			"Sit at the machine with thighs secured",
			"Grip the bar wider than shoulder width",
			"Pull the bar down to chest height",
			"Return under control to the start",
		},
		Tips: []string{
			"Adjust the load to your capacity",
			"Lead the pull with the elbows",
		},
	},
	{
		ID:   "legs-squat",
		Name: "Squat",
		Description: `The fundamental lower-body movement for quadriceps, glutes and core.

## Form
- Feet at shoulder width, weight on the heels.
- Sit back and down, chest up, until the hips drop below the knees.`,
		Focus:        []string{"legs", "core"},
		MuscleGroups: []string{"Quadriceps", "Glutes", "Core"},
		Difficulty:   "intermediate",
		Equipment:    nil,
		Sets:         3,
		Reps:         "10-15",
		RestTime:     "60-90s",
		Instructions: []string{
			"Stand with feet at shoulder width, toes slightly out",
			"Bend hips and knees together as if sitting back",
			"Keep the chest up and core braced",
			"Descend until the hips drop below the knees",
			"Drive through the floor to stand up",
		},
		Tips: []string{
			"Keep the weight on the heels",
			"Knees track in line with the toes",
			"Use a chair as a depth reference if needed",
		},
	},
	{
		ID:   "legs-lunge",
		Name: "Lunge",
		Description: `Single-leg exercise for legs, glutes and balance.`,
		Focus:        []string{"legs"},
		MuscleGroups: []string{"Quadriceps", "Glutes"},
		Difficulty:   "intermediate",
		Equipment:    nil,
		Sets:         3,
		Reps:         "10-12",
		RestTime:     "45-60s",
		PerSide:      true,
		Instructions: []string{
			"Step forward with one leg",
			"Lower the back knee toward the floor",
			"Keep the torso upright",
			"Push back to the starting position and alternate",
		},
		Tips: []string{
			"The front knee should not pass the toes",
			"Use a wall for support if balance is hard",
		},
	},
	{
		ID:   "legs-leg-press",
		Name: "Leg Press",
		Description: `Machine press for quadriceps and glutes. A loaded alternative to the squat.`,
		Focus:        []string{"legs"},
		MuscleGroups: []string{"Quadriceps", "Glutes"},
		Difficulty:   "beginner",
		Equipment:    []string{"leg press machine"},
		Sets:         3,
		Reps:         "10-15",
		RestTime:     "60-90s",
		Instructions: []string{
			"Sit in the machine with feet at shoulder width on the platform",
			"Lower the platform under control",
			"Press back up without locking the knees",
		},
		Tips: []string{
			"Adjust the load to your capacity",
			"Keep the lower back against the pad",
		},
	},
	{
		ID:   "core-plank",
		Name: "Plank",
		Description: `Isometric hold for the core and shoulder stabilizers.

## Form
- Forearms and toes on the floor, body in one straight line.
- Brace the abdomen and breathe normally.`,
		Focus:        []string{"core"},
		MuscleGroups: []string{"Core", "Shoulders"},
		Difficulty:   "beginner",
		Equipment:    nil,
		Sets:         3,
		Reps:         "30-60s",
		RestTime:     "45s",
		Timed:        true,
		Instructions: []string{
			"Support yourself on forearms and toes",
			"Keep the body in a straight line",
			"Brace the abdomen and glutes",
			"Breathe normally and hold the position",
		},
		Tips: []string{
			"Do not let the hips rise or sink",
			"Quality of position beats time held",
		},
	},
	{
		ID:   "shoulders-lateral-raise",
		Name: "Lateral Raise",
		Description: `Shoulder isolation with dumbbells or filled water bottles.`,
		Focus:        []string{"shoulders"},
		MuscleGroups: []string{"Shoulders"},
		Difficulty:   "beginner",
		Equipment:    []string{"dumbbells"},
		Sets:         3,
		Reps:         "10-12",
		RestTime:     "45-60s",
		Instructions: []string{
			"Hold the weights at your sides",
			"Raise the arms out to shoulder height",
			"Lower under control",
		},
		Tips: []string{
			"Do not swing the body",
			"Stop the raise at shoulder height",
		},
	},
	{
		ID:   "functional-burpee",
		Name: "Modified Burpee",
		Description: `Full-body conditioning movement, scaled without the jump for beginners.`,
		Focus:        []string{"functional"},
		MuscleGroups: []string{"Full Body"},
		Difficulty:   "advanced",
		Equipment:    nil,
		Sets:         4,
		Reps:         "8-10",
		RestTime:     "30s",
		Instructions: []string{
			"Squat down and place the hands on the floor",
			"Kick the legs back to a plank",
			"Return to the squat position",
			"Stand up, without the jump if you are a beginner",
		},
		Tips: []string{
			"Scale the movement to your level",
			"Keep a steady rhythm",
		},
	},
	{
		ID:   "functional-dynamic-plank",
		Name: "Dynamic Plank",
		Description: `Plank variation moving between forearms and hands. Works the core and shoulders.`,
		Focus:        []string{"functional", "core"},
		MuscleGroups: []string{"Core", "Shoulders"},
		Difficulty:   "intermediate",
		Equipment:    nil,
		Sets:         3,
		Reps:         "10-12",
		RestTime:     "45s",
		Instructions: []string{
			"Start in a forearm plank",
			"Push up to a hand plank one arm at a time",
			"Lower back to the forearms",
			"Alternate the leading arm",
		},
		Tips: []string{
			"Keep the hips stable",
			"Move under control",
		},
	},
	{
		ID:   "cardio-treadmill",
		Name: "Treadmill Walk",
		Description: `Moderate-pace walk on the treadmill. Warm-up or standalone cardio block.`,
		Focus:        []string{"cardio"},
		MuscleGroups: []string{"Cardio"},
		Difficulty:   "beginner",
		Equipment:    []string{"treadmill"},
		Sets:         1,
		Reps:         "15-20 min",
		RestTime:     "120s",
		Timed:        true,
		Instructions: []string{
			"Keep an upright posture throughout",
			"Start slow and raise the pace gradually",
			"Breathe in a controlled rhythm",
		},
		Tips: []string{
			"Hydrate before and during",
			"Slow down at any sign of discomfort",
		},
	},
	{
		ID:   "cardio-bike",
		Name: "Exercise Bike",
		Description: `Steady-pace cycling. Adjust resistance to your conditioning.`,
		Focus:        []string{"cardio", "legs"},
		MuscleGroups: []string{"Cardio", "Legs"},
		Difficulty:   "beginner",
		Equipment:    []string{"exercise bike"},
		Sets:         1,
		Reps:         "20-25 min",
		RestTime:     "120s",
		Timed:        true,
		Instructions: []string{
			"Adjust the saddle so the knee stays slightly bent",
			"Pedal at a steady cadence",
			"Increase resistance as conditioning allows",
		},
		Tips: []string{
			"Keep the shoulders relaxed",
		},
	},
	{
		ID:   "hiit-mountain-climbers",
		Name: "Mountain Climbers",
		Description: `High-intensity interval movement alternating knees to the chest from a plank.`,
		Focus:        []string{"functional", "cardio", "core"},
		MuscleGroups: []string{"Core", "Cardio"},
		Difficulty:   "intermediate",
		Equipment:    nil,
		Sets:         4,
		Reps:         "30s work / 30s rest",
		RestTime:     "30s",
		Timed:        true,
		Instructions: []string{
			"Start in a hand plank",
			"Drive one knee toward the chest",
			"Switch legs quickly, keeping the hips low",
		},
		Tips: []string{
			"Keep the pace you can sustain for the whole interval",
		},
	},
}
