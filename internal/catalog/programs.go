// Package catalog knows which convergence programs exist, which departments may
// join them, and how to narrow a fetched catalog to one department.
package catalog

// Program is one entry of the remote catalog, decoded verbatim.
type Program struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// ProgramID identifies a program with a detailed descriptor. The values match
// the ids the advisory service uses in /api/programs/available.
type ProgramID string

const (
	BigData          ProgramID = "빅데이터_전공"
	IPSmartFusion    ProgramID = "지식재산_스마트융합"
	CrisisManagement ProgramID = "위기관리_전공"
	SecurityConsult  ProgramID = "보안컨설팅_전공"
	VentureBusiness  ProgramID = "벤처비즈니스_전공"
	SecondaryBattery ProgramID = "이차전지_융합전공"
	PublicDataSci    ProgramID = "공공데이터사이언스_전공"
)

var displayNames = map[ProgramID]string{
	BigData:          "빅데이터",
	IPSmartFusion:    "지식재산 스마트융합",
	CrisisManagement: "위기관리",
	SecurityConsult:  "보안컨설팅",
	VentureBusiness:  "벤처비즈니스",
	SecondaryBattery: "이차전지융합",
	PublicDataSci:    "공공데이터사이언스",
}

var byDisplayName = func() map[string]ProgramID {
	m := make(map[string]ProgramID, len(displayNames))
	for id, name := range displayNames {
		m[name] = id
	}
	return m
}()

// DisplayName returns the human-readable program name, or the raw id if unknown.
func (id ProgramID) DisplayName() string {
	if name, ok := displayNames[id]; ok {
		return name
	}
	return string(id)
}

// LookupProgram resolves a display name to its ProgramID.
func LookupProgram(name string) (ProgramID, bool) {
	id, ok := byDisplayName[name]
	return id, ok
}

// KnownPrograms lists every ProgramID with a descriptor, in catalog order.
func KnownPrograms() []ProgramID {
	return []ProgramID{
		BigData,
		IPSmartFusion,
		CrisisManagement,
		SecurityConsult,
		VentureBusiness,
		SecondaryBattery,
		PublicDataSci,
	}
}

// ProgramType is a multi-major track offered on the first funnel step.
type ProgramType struct {
	ID          string
	Label       string
	Description string
	Enabled     bool
}

// ProgramTypes returns the track options. Only the convergence track is open.
func ProgramTypes() []ProgramType {
	return []ProgramType{
		{ID: "convergence", Label: "융합전공", Description: "여러 학문 분야를 융합한 전공", Enabled: true},
		{ID: "double", Label: "복수전공", Description: "두 개의 전공을 동시에 이수", Enabled: false},
		{ID: "minor", Label: "부전공", Description: "주전공 외에 추가로 이수하는 전공", Enabled: false},
		{ID: "linked", Label: "연계전공", Description: "여러 학과가 연계하여 운영하는 전공", Enabled: false},
	}
}
