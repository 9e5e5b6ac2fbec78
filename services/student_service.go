package services

import (
	"database/sql"
	"strings"

	"github.com/pkg/errors"

	"deserve-iq/models"
	"deserve-iq/utils"
)

// StudentFromRow builds the persistable record from a coerced row. The
// build is total: absent cells become zero values, unknown columns are
// ignored. The girlchild key wins over girl_child when present and
// non-empty.
func StudentFromRow(row *utils.Row) models.Student {
	girl := row.Str("girlchild")
	if girl == "" {
		girl = row.Str("girl_child")
	}

	s := models.Student{
		Name:     row.Str("name"),
		District: row.Str("district"),

		PassedOut10: row.Int("passed_out_10"),
		PassedOut11: row.Int("passed_out_11"),
		PassedOut12: row.Int("passed_out_12"),

		Marks10: row.Int("marks_10"),
		Marks11: row.Int("marks_11"),
		Marks12: row.Int("marks_12"),

		AcademicScore: row.Int("academic_score"),
		Cutoff:        row.Int("cutoff"),

		PreferredLocation: row.Str("preferred_location"),
		PreferredCourse:   row.Str("preferred_course"),
		FamilyIncomeTier:  row.Str("family_income_tier"),

		FamilyIncome:  row.Int("family_income"),
		FamilyMembers: row.Int("family_members"),

		MotivationalScore: row.Float("motivational_score"),
		AttendanceRate:    row.Float("attendance_rate"),
		CommunicationFreq: row.Float("communication_freq"),
		InterestLvl:       row.Float("interest_lvl"),

		MotivationLevel:        row.Int("motivation_level"),
		CommunicationFrequency: row.Str("communication_frequency"),
		InterestLevel:          row.Str("interest_level"),

		Orphan:        row.Str("orphan"),
		SingleParent:  row.Str("single_parent"),
		FirstGraduate: row.Str("first_graduate"),
		GirlChild:     girl,

		SchoolType10: row.Str("school_type_10"),
		SchoolType11: row.Str("school_type_11"),
		SchoolType12: row.Str("school_type_12"),

		Siblings:              row.Str("siblings"),
		SiblingsDetails:       row.Str("siblings_details"),
		SiblingsWorkOrCollege: row.Str("siblings_work_or_college"),

		RentOrOwn:     row.Str("rent_or_own"),
		PropertyOwned: row.Str("property_owned"),

		WillingHostel:          row.Str("willing_hostel"),
		AnyScholarship:         row.Str("any_scholarship"),
		ParentsOccupation:      row.Str("parents_occupation"),
		PrivateOrGovtSchool:    row.Str("private_or_govt_school"),
		ScholarshipEligibility: row.Str("scholarship_eligibility"),
		ExtraCurricular:        row.Str("extra_curricular"),
		Attitude:               row.Str("attitude"),
		SchoolFee6To12:         row.Str("school_fee_6_to_12"),
	}

	// family_support carries a decimal score in newer files and a label
	// like "high" in legacy ones, under the same column name.
	if v, ok := row.Get("family_support"); ok {
		if _, isString := v.(string); isString {
			s.FamilySupportLabel = row.Str("family_support")
		} else {
			s.FamilySupport = row.Float("family_support")
		}
	}

	return s
}

const studentColumns = `name, district,
	passed_out_10, passed_out_11, passed_out_12,
	marks_10, marks_11, marks_12,
	academic_score, cutoff,
	preferred_location, preferred_course, family_income_tier,
	family_income, family_members,
	motivational_score, attendance_rate, communication_freq, interest_lvl, family_support,
	motivation_level, communication_frequency, family_support_label, interest_level,
	orphan, single_parent, first_graduate, girlchild,
	school_type_10, school_type_11, school_type_12,
	siblings, siblings_details, siblings_work_or_college,
	rent_or_own, property_owned,
	willing_hostel, any_scholarship, parents_occupation, private_or_govt_school,
	scholarship_eligibility, extra_curricular, attitude, school_fee_6_to_12`

func studentArgs(s *models.Student) []interface{} {
	return []interface{}{
		s.Name, s.District,
		s.PassedOut10, s.PassedOut11, s.PassedOut12,
		s.Marks10, s.Marks11, s.Marks12,
		s.AcademicScore, s.Cutoff,
		s.PreferredLocation, s.PreferredCourse, s.FamilyIncomeTier,
		s.FamilyIncome, s.FamilyMembers,
		s.MotivationalScore, s.AttendanceRate, s.CommunicationFreq, s.InterestLvl, s.FamilySupport,
		s.MotivationLevel, s.CommunicationFrequency, s.FamilySupportLabel, s.InterestLevel,
		s.Orphan, s.SingleParent, s.FirstGraduate, s.GirlChild,
		s.SchoolType10, s.SchoolType11, s.SchoolType12,
		s.Siblings, s.SiblingsDetails, s.SiblingsWorkOrCollege,
		s.RentOrOwn, s.PropertyOwned,
		s.WillingHostel, s.AnyScholarship, s.ParentsOccupation, s.PrivateOrGovtSchool,
		s.ScholarshipEligibility, s.ExtraCurricular, s.Attitude, s.SchoolFee6To12,
	}
}

func scanStudent(scanner interface{ Scan(...interface{}) error }) (models.Student, error) {
	var s models.Student
	err := scanner.Scan(
		&s.ID,
		&s.Name, &s.District,
		&s.PassedOut10, &s.PassedOut11, &s.PassedOut12,
		&s.Marks10, &s.Marks11, &s.Marks12,
		&s.AcademicScore, &s.Cutoff,
		&s.PreferredLocation, &s.PreferredCourse, &s.FamilyIncomeTier,
		&s.FamilyIncome, &s.FamilyMembers,
		&s.MotivationalScore, &s.AttendanceRate, &s.CommunicationFreq, &s.InterestLvl, &s.FamilySupport,
		&s.MotivationLevel, &s.CommunicationFrequency, &s.FamilySupportLabel, &s.InterestLevel,
		&s.Orphan, &s.SingleParent, &s.FirstGraduate, &s.GirlChild,
		&s.SchoolType10, &s.SchoolType11, &s.SchoolType12,
		&s.Siblings, &s.SiblingsDetails, &s.SiblingsWorkOrCollege,
		&s.RentOrOwn, &s.PropertyOwned,
		&s.WillingHostel, &s.AnyScholarship, &s.ParentsOccupation, &s.PrivateOrGovtSchool,
		&s.ScholarshipEligibility, &s.ExtraCurricular, &s.Attitude, &s.SchoolFee6To12,
	)
	return s, err
}

// StudentService is the persistence gateway over the students table.
type StudentService struct {
	DB *sql.DB
}

// Save inserts one record and fills in the auto-assigned id. Failures
// wrap utils.ErrStorage.
func (ss *StudentService) Save(s *models.Student) error {
	placeholders := "?" + strings.Repeat(", ?", 43)
	query := `INSERT INTO students (` + studentColumns + `) VALUES (` + placeholders + `)`
	result, err := ss.DB.Exec(query, studentArgs(s)...)
	if err != nil {
		return errors.Wrapf(utils.ErrStorage, "insert failed: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return errors.Wrapf(utils.ErrStorage, "failed to retrieve student id: %v", err)
	}
	s.ID = id
	return nil
}

func (ss *StudentService) List() ([]models.Student, error) {
	rows, err := ss.DB.Query(`SELECT id, ` + studentColumns + ` FROM students`)
	if err != nil {
		return nil, errors.Wrapf(utils.ErrStorage, "select failed: %v", err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, errors.Wrapf(utils.ErrStorage, "scan failed: %v", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(utils.ErrStorage, "select failed: %v", err)
	}
	return students, nil
}

// Get returns sql.ErrNoRows untouched so the handler can answer 404.
func (ss *StudentService) Get(id int64) (models.Student, error) {
	row := ss.DB.QueryRow(`SELECT id, `+studentColumns+` FROM students WHERE id = ?`, id)
	s, err := scanStudent(row)
	if err == sql.ErrNoRows {
		return s, err
	}
	if err != nil {
		return s, errors.Wrapf(utils.ErrStorage, "select failed: %v", err)
	}
	return s, nil
}

func (ss *StudentService) Delete(id int64) error {
	if _, err := ss.DB.Exec(`DELETE FROM students WHERE id = ?`, id); err != nil {
		return errors.Wrapf(utils.ErrStorage, "delete failed: %v", err)
	}
	return nil
}
