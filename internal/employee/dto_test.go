package employee_test

import (
	"encoding/json"

	internalErrors "github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/employee"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CourseList", func() {
	It("should decode a plain JSON array", func() {
		var dto employee.CreateEmployeeDTO
		err := json.Unmarshal([]byte(`{"courses": ["MCA", "BCA"]}`), &dto)
		Expect(err).NotTo(HaveOccurred())
		Expect(dto.Courses).To(ConsistOf("MCA", "BCA"))
	})

	It("should decode a JSON-encoded array string", func() {
		var dto employee.CreateEmployeeDTO
		err := json.Unmarshal([]byte(`{"courses": "[\"BSC\"]"}`), &dto)
		Expect(err).NotTo(HaveOccurred())
		Expect(dto.Courses).To(ConsistOf("BSC"))
	})

	It("should reject a malformed array string", func() {
		var dto employee.CreateEmployeeDTO
		err := json.Unmarshal([]byte(`{"courses": "not-json"}`), &dto)
		Expect(err).To(HaveOccurred())
	})

	Describe("DecodeString", func() {
		It("should parse a stringified array from a form field", func() {
			var list employee.CourseList
			err := list.DecodeString(`["MCA","BSC"]`)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(ConsistOf("MCA", "BSC"))
		})

		It("should treat an empty string as an empty list", func() {
			var list employee.CourseList
			err := list.DecodeString("")
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(BeEmpty())
		})

		It("should reject malformed input", func() {
			var list employee.CourseList
			err := list.DecodeString("MCA,BCA")
			Expect(err).To(HaveOccurred())
		})
	})
})

var _ = Describe("Employee DTO validation", func() {
	blankEmailDTO := func() employee.CreateEmployeeDTO {
		return employee.CreateEmployeeDTO{
			EmployeeID:  "EMP001",
			Name:        "Alice Smith",
			Email:       "",
			Mobile:      "0123456789",
			Designation: "HR",
			Gender:      "Female",
			Courses:     employee.CourseList{"MCA"},
		}
	}

	It("should report a blank email as a format error on create", func() {
		err := blankEmailDTO().Validate()
		Expect(err).NotTo(BeNil())

		fields := err.Details.(internalErrors.ValidationErrors).FieldMap()
		Expect(fields).To(HaveKeyWithValue("email", "Invalid email format"))
	})

	It("should report a blank email as a format error on update", func() {
		dto := employee.UpdateEmployeeDTO{
			Name:        "Alice Smith",
			Email:       "",
			Mobile:      "0123456789",
			Designation: "HR",
			Gender:      "Female",
			Courses:     employee.CourseList{"MCA"},
		}

		err := dto.Validate()
		Expect(err).NotTo(BeNil())

		fields := err.Details.(internalErrors.ValidationErrors).FieldMap()
		Expect(fields).To(HaveKeyWithValue("email", "Invalid email format"))
	})
})
