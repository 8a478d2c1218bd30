package catalog

// Unselected is the sentinel department meaning "no department chosen".
const Unselected = "미선택"

// Department names offered on the department step.
const (
	Business              = "경영학부"
	InternationalBusiness = "국제경영학과"
	ManagementInformation = "경영정보학과"
)

// departmentPrograms lists the programs each department may join. Never mutated.
var departmentPrograms = map[string][]ProgramID{
	Business:              {CrisisManagement, VentureBusiness, IPSmartFusion},
	ManagementInformation: {BigData, SecurityConsult, PublicDataSci, VentureBusiness, IPSmartFusion, SecondaryBattery},
	InternationalBusiness: {VentureBusiness, IPSmartFusion},
}

// Departments returns the selectable departments in display order.
func Departments() []string {
	return []string{Business, InternationalBusiness, ManagementInformation}
}

// EligiblePrograms returns the display names a department may join.
// An unknown department has none.
func EligiblePrograms(department string) []string {
	ids := departmentPrograms[department]
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, id.DisplayName())
	}
	return names
}

// Filter narrows programs to those the department may join, keeping catalog order.
// An empty or Unselected department returns programs unchanged.
// Filter does not modify its input.
func Filter(programs []Program, department string) []Program {
	if department == "" || department == Unselected {
		return programs
	}

	allowed := make(map[string]struct{})
	for _, name := range EligiblePrograms(department) {
		allowed[name] = struct{}{}
	}

	out := make([]Program, 0, len(allowed))
	for _, p := range programs {
		if _, ok := allowed[p.Name]; ok {
			out = append(out, p)
		}
	}
	return out
}
