package store

import (
	"time"

	"github.com/shopspring/decimal"

	"contract-claim-system/internal/model"
)

// Sample data mirroring the demo population the review dashboard was built
// around. The claim counter starts above the highest seeded sequence (0091)
// so generated ids never collide with seeds.
func (s *MemoryStore) seed() {
	users := []model.User{
		{
			ID: "u-1001", Email: "sarah.johnson@university.ac.za",
			FirstName: "Sarah", LastName: "Johnson", Role: model.RoleLecturer,
			Department: "Computer Science", CreatedDate: date(2022, 1, 15), IsActive: true,
		},
		{
			ID: "u-1002", Email: "michael.brown@university.ac.za",
			FirstName: "Michael", LastName: "Brown", Role: model.RoleLecturer,
			Department: "Information Systems", CreatedDate: date(2021, 7, 1), IsActive: true,
		},
		{
			ID: "u-1003", Email: "emily.chen@university.ac.za",
			FirstName: "Emily", LastName: "Chen", Role: model.RoleLecturer,
			Department: "Mathematics", CreatedDate: date(2022, 3, 10), IsActive: true,
		},
		{
			ID: "u-1004", Email: "robert.wilson@university.ac.za",
			FirstName: "Robert", LastName: "Wilson", Role: model.RoleLecturer,
			Department: "Computer Science", CreatedDate: date(2020, 11, 20), IsActive: true,
		},
		{
			ID: "u-2001", Email: "academic.manager@university.ac.za",
			FirstName: "Academic", LastName: "Manager", Role: model.RoleAcademicManager,
			Department: "Faculty Office", CreatedDate: date(2019, 2, 1), IsActive: true,
		},
	}
	for _, u := range users {
		s.users[u.ID] = u
		s.userOrder = append(s.userOrder, u.ID)
	}

	reviewed1 := date(2023, 10, 28)
	reviewed2 := date(2023, 11, 3)

	claims := []model.Claim{
		{
			ID: "CL-2023-0087", ClaimMonth: "2023-10",
			HoursWorked: decimal.NewFromInt(75), HourlyRate: decimal.RequireFromString("89.75"),
			Description: "Monthly teaching services for undergraduate courses",
			LecturerID: "u-1001", LecturerName: "Dr. Sarah Johnson",
			Status: model.ClaimStatusApproved,
			SubmittedDate: date(2023, 10, 25),
			ReviewedBy: "Academic Manager", ReviewedDate: &reviewed1,
		},
		{
			ID: "CL-2023-0088", ClaimMonth: "2023-10",
			HoursWorked: decimal.NewFromInt(85), HourlyRate: decimal.RequireFromString("92.35"),
			Description: "Research supervision and thesis review for postgraduate students",
			LecturerID: "u-1002", LecturerName: "Prof. Michael Brown",
			Status: model.ClaimStatusSubmitted,
			SubmittedDate: date(2023, 10, 28),
		},
		{
			ID: "CL-2023-0089", ClaimMonth: "2023-10",
			HoursWorked: decimal.NewFromInt(60), HourlyRate: decimal.RequireFromString("85.25"),
			Description: "Guest lectures and workshop facilitation",
			LecturerID: "u-1003", LecturerName: "Dr. Emily Chen",
			Status: model.ClaimStatusRejected,
			SubmittedDate: date(2023, 11, 1),
			ReviewComments: "Insufficient documentation provided for workshop activities.",
			ReviewedBy: "Academic Manager", ReviewedDate: &reviewed2,
		},
		{
			ID: "CL-2023-0090", ClaimMonth: "2023-10",
			HoursWorked: decimal.NewFromInt(92), HourlyRate: decimal.RequireFromString("95.50"),
			Description: "Course development and lecture delivery",
			LecturerID: "u-1004", LecturerName: "Dr. Robert Wilson",
			Status: model.ClaimStatusSubmitted,
			SubmittedDate: date(2023, 11, 2),
		},
		{
			ID: "CL-2023-0091", ClaimMonth: "2023-11",
			HoursWorked: decimal.NewFromInt(80), HourlyRate: decimal.RequireFromString("88.00"),
			Description: "Student assessment and marking",
			LecturerID: "u-1001", LecturerName: "Dr. Sarah Johnson",
			Status: model.ClaimStatusSubmitted,
			SubmittedDate: date(2023, 11, 5),
		},
	}
	for _, c := range claims {
		s.claims[c.ID] = c
		s.claimOrder = append(s.claimOrder, c.ID)
	}
	s.claimCounter = 91

	docs := []model.Document{
		{
			ID: "doc-0087-timesheet", StoredName: "seed_timesheet_0087.pdf",
			OriginalName: "timesheet.pdf", StoragePath: "uploads/seed_timesheet_0087.pdf",
			Size: 2450000, ContentType: "application/pdf",
			UploadedDate: date(2023, 10, 25), UploadedBy: "Dr. Sarah Johnson",
			ClaimID: "CL-2023-0087",
		},
		{
			ID: "doc-0087-contract", StoredName: "seed_contract_0087.pdf",
			OriginalName: "contract.pdf", StoragePath: "uploads/seed_contract_0087.pdf",
			Size: 1800000, ContentType: "application/pdf",
			UploadedDate: date(2023, 10, 25), UploadedBy: "Dr. Sarah Johnson",
			ClaimID: "CL-2023-0087",
		},
		{
			ID: "doc-0088-timesheet", StoredName: "seed_timesheet_0088.pdf",
			OriginalName: "timesheet.pdf", StoragePath: "uploads/seed_timesheet_0088.pdf",
			Size: 2100000, ContentType: "application/pdf",
			UploadedDate: date(2023, 10, 28), UploadedBy: "Prof. Michael Brown",
			ClaimID: "CL-2023-0088",
		},
		{
			ID: "doc-0089-materials", StoredName: "seed_workshop_materials_0089.zip",
			OriginalName: "workshop_materials.zip", StoragePath: "uploads/seed_workshop_materials_0089.zip",
			Size: 15700000, ContentType: "application/zip",
			UploadedDate: date(2023, 11, 1), UploadedBy: "Dr. Emily Chen",
			ClaimID: "CL-2023-0089",
		},
		{
			ID: "doc-0090-timesheet", StoredName: "seed_timesheet_signed_0090.pdf",
			OriginalName: "timesheet_signed.pdf", StoragePath: "uploads/seed_timesheet_signed_0090.pdf",
			Size: 2500000, ContentType: "application/pdf",
			UploadedDate: date(2023, 11, 2), UploadedBy: "Dr. Robert Wilson",
			ClaimID: "CL-2023-0090",
		},
	}
	for _, d := range docs {
		s.documents[d.ID] = d
		s.docOrder = append(s.docOrder, d.ID)
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
