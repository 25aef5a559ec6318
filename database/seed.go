package database

import (
	"time"

	"github.com/reelflip/jeeprep-api/model"
)

// Seed entity ids are fixed so a fresh deployment is reproducible.
const (
	SeedAdminID   = "u-admin"
	SeedStudentID = "u-student"

	SeedAdminEmail   = "admin@jeeprep.in"
	SeedStudentEmail = "rahul@example.com"
)

// SeedDocument builds the default document: two users, the fixed JEE chapter
// catalog, a handful of sample questions, one published master mock and the
// default system config. The seeded student already has the catalog cloned
// into per-user instances, exactly as registration would do.
func SeedDocument() *model.Document {
	joined := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	users := []model.User{
		{
			ID:           SeedAdminID,
			Name:         "Admin",
			Email:        SeedAdminEmail,
			Password:     "admin123",
			RecoveryHint: "default admin",
			Role:         model.RoleAdmin,
			Status:       model.StatusActive,
			JoinedAt:     joined,
		},
		{
			ID:           SeedStudentID,
			Name:         "Rahul Sharma",
			Email:        SeedStudentEmail,
			Password:     "password123",
			RecoveryHint: "first school",
			Role:         model.RoleStudent,
			Status:       model.StatusActive,
			JoinedAt:     joined,
		},
	}

	catalog := seedCatalog()
	questions := seedQuestions()

	userChapters := make([]model.Chapter, 0, len(catalog))
	for _, tpl := range catalog {
		userChapters = append(userChapters, tpl.Instance(SeedStudentID))
	}

	masterMock := model.MasterMockTest{
		ID:          "mm-jee-main-01",
		Name:        "JEE Main Full Syllabus Mock 1",
		QuestionIDs: []string{"q-phy-001", "q-phy-002", "q-chem-001", "q-math-001"},
		DurationMin: 180,
		TotalMarks:  16,
		CreatedAt:   joined,
	}

	return &model.Document{
		Version:         model.SchemaVersion,
		Users:           users,
		GlobalChapters:  catalog,
		GlobalQuestions: questions,
		UserChapters:    userChapters,
		Tests:           []model.MockTestResult{},
		Logs:            []model.SystemLog{},
		MasterMocks:     []model.MasterMockTest{masterMock},
		SystemConfig:    model.DefaultSystemConfig(),
	}
}

func seedCatalog() []model.Chapter {
	entries := []struct {
		id, subject, name, description string
	}{
		{"ch-phy-kinematics", "Physics", "Kinematics", "Motion in one and two dimensions, projectile motion."},
		{"ch-phy-laws-of-motion", "Physics", "Laws of Motion", "Newton's laws, friction, circular motion dynamics."},
		{"ch-phy-thermodynamics", "Physics", "Thermodynamics", "Heat, work, first and second laws, entropy."},
		{"ch-phy-electrostatics", "Physics", "Electrostatics", "Charges, fields, potential, capacitors."},
		{"ch-chem-mole-concept", "Chemistry", "Mole Concept", "Stoichiometry, limiting reagents, concentration terms."},
		{"ch-chem-chemical-bonding", "Chemistry", "Chemical Bonding", "Ionic, covalent and coordinate bonds, VSEPR, hybridisation."},
		{"ch-chem-equilibrium", "Chemistry", "Equilibrium", "Chemical and ionic equilibrium, Le Chatelier's principle."},
		{"ch-chem-organic-basics", "Chemistry", "Organic Chemistry Basics", "Nomenclature, isomerism, reaction mechanisms."},
		{"ch-math-quadratics", "Maths", "Quadratic Equations", "Roots, discriminants, relations between roots and coefficients."},
		{"ch-math-coordinate-geometry", "Maths", "Coordinate Geometry", "Straight lines, circles, conic sections."},
		{"ch-math-calculus", "Maths", "Calculus", "Limits, continuity, differentiation and integration."},
		{"ch-math-probability", "Maths", "Probability", "Classical probability, conditional probability, Bayes' theorem."},
	}

	catalog := make([]model.Chapter, 0, len(entries))
	for _, e := range entries {
		catalog = append(catalog, model.Chapter{
			ID:          e.id,
			Subject:     e.subject,
			Name:        e.name,
			Description: e.description,
			VideoLinks:  []string{},
			Questions:   []model.Question{},
			Status:      model.ChapterNotStarted,
		})
	}
	return catalog
}

func seedQuestions() []model.Question {
	return []model.Question{
		{
			ID:           "q-phy-001",
			Text:         "A particle moves with constant acceleration from rest and covers 100 m in 10 s. What is its acceleration?",
			Options:      []string{"1 m/s²", "2 m/s²", "4 m/s²", "10 m/s²"},
			CorrectIndex: 1,
			Subject:      "Physics",
			ChapterID:    "ch-phy-kinematics",
			ExamTag:      "JEE Main",
		},
		{
			ID:           "q-phy-002",
			Text:         "A block on a rough horizontal surface needs 10 N to start moving and 8 N to keep moving. The ratio of static to kinetic friction coefficients is:",
			Options:      []string{"0.8", "1.0", "1.25", "2.0"},
			CorrectIndex: 2,
			Subject:      "Physics",
			ChapterID:    "ch-phy-laws-of-motion",
			ExamTag:      "JEE Main",
		},
		{
			ID:           "q-chem-001",
			Text:         "How many moles of oxygen are required to completely burn 2 moles of methane?",
			Options:      []string{"1", "2", "3", "4"},
			CorrectIndex: 3,
			Subject:      "Chemistry",
			ChapterID:    "ch-chem-mole-concept",
			ExamTag:      "JEE Main",
		},
		{
			ID:           "q-math-001",
			Text:         "If the roots of x² − 5x + k = 0 differ by 1, then k equals:",
			Options:      []string{"4", "5", "6", "7"},
			CorrectIndex: 2,
			Subject:      "Maths",
			ChapterID:    "ch-math-quadratics",
			ExamTag:      "JEE Main",
		},
		{
			ID:           "q-math-002",
			Text:         "The derivative of x·ln(x) with respect to x is:",
			Options:      []string{"ln(x)", "1 + ln(x)", "x + ln(x)", "1/x"},
			CorrectIndex: 1,
			Subject:      "Maths",
			ChapterID:    "ch-math-calculus",
			ExamTag:      "JEE Advanced",
		},
	}
}
