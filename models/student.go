package models

// Student is the persisted record. It is the superset of both column
// generations: the v2 fields (cutoff, preferences, decimal behavioral
// scores) stay at their zero value when the input predates them, and
// readers treat zero/empty as "unknown".
type Student struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	District string `json:"district"`

	PassedOut10 int `json:"passed_out_10"`
	PassedOut11 int `json:"passed_out_11"`
	PassedOut12 int `json:"passed_out_12"`

	Marks10 int `json:"marks_10"`
	Marks11 int `json:"marks_11"`
	Marks12 int `json:"marks_12"`

	AcademicScore int `json:"academic_score"`
	Cutoff        int `json:"cutoff"`

	PreferredLocation string `json:"preferred_location"`
	PreferredCourse   string `json:"preferred_course"`
	FamilyIncomeTier  string `json:"family_income_tier"`

	FamilyIncome  int `json:"family_income"`
	FamilyMembers int `json:"family_members"`

	// Behavioral scores, second-generation decimals.
	MotivationalScore float64 `json:"motivational_score"`
	AttendanceRate    float64 `json:"attendance_rate"`
	CommunicationFreq float64 `json:"communication_freq"`
	InterestLvl       float64 `json:"interest_lvl"`
	FamilySupport     float64 `json:"family_support"`

	// Legacy behavioral columns, kept as optional.
	MotivationLevel        int    `json:"motivation_level"`
	CommunicationFrequency string `json:"communication_frequency"`
	FamilySupportLabel     string `json:"family_support_label"`
	InterestLevel          string `json:"interest_level"`

	// Protective flags. GirlChild is the canonical coalesced field,
	// persisted as girlchild.
	Orphan        string `json:"orphan"`
	SingleParent  string `json:"single_parent"`
	FirstGraduate string `json:"first_graduate"`
	GirlChild     string `json:"girlchild"`

	SchoolType10 string `json:"school_type_10"`
	SchoolType11 string `json:"school_type_11"`
	SchoolType12 string `json:"school_type_12"`

	Siblings              string `json:"siblings"`
	SiblingsDetails       string `json:"siblings_details"`
	SiblingsWorkOrCollege string `json:"siblings_work_or_college"`

	RentOrOwn     string `json:"rent_or_own"`
	PropertyOwned string `json:"property_owned"`

	WillingHostel          string `json:"willing_hostel"`
	AnyScholarship         string `json:"any_scholarship"`
	ParentsOccupation      string `json:"parents_occupation"`
	PrivateOrGovtSchool    string `json:"private_or_govt_school"`
	ScholarshipEligibility string `json:"scholarship_eligibility"`
	ExtraCurricular        string `json:"extra_curricular"`
	Attitude               string `json:"attitude"`
	SchoolFee6To12         string `json:"school_fee_6_to_12"`
}
