package types

// LayoutBlock 表示PDF中一行文本的版面信息
// 由提取层（可选）产出，解析核心只读使用；缺失时名字推断自动降级为非版面信号
type LayoutBlock struct {
	Page     int     `json:"page"`      // 页码，从0开始
	X0       float64 `json:"x0"`        // 包围盒左上角X
	Y0       float64 `json:"y0"`        // 包围盒左上角Y
	X1       float64 `json:"x1"`        // 包围盒右下角X
	Y1       float64 `json:"y1"`        // 包围盒右下角Y
	Text     string  `json:"text"`      // 行文本
	FontSize float64 `json:"font_size"` // 行内最大字号
	IsBold   bool    `json:"is_bold"`   // 是否包含粗体字
	LineNo   int     `json:"line_no"`   // 页内行号
}

// Address 地址信息，所有字段缺省为空字符串，永不为null
type Address struct {
	Street     string `json:"via"`
	City       string `json:"citta"`
	PostalCode string `json:"cap"`
	Province   string `json:"provincia"`
	Country    string `json:"paese"`
}

// ContactInfo 联系方式。不变量：字段只会是""或通过校验的值
type ContactInfo struct {
	Address  Address `json:"indirizzo"`
	Phone    string  `json:"telefono"`
	Mobile   string  `json:"cellulare"`
	Email    string  `json:"email"`
	LinkedIn string  `json:"linkedin"`
	Website  string  `json:"sito_web"`
	GitHub   string  `json:"github"`
}

// PersonalInfo 个人基本信息（姓名、出生、国籍等）
type PersonalInfo struct {
	Name          string `json:"nome"`
	Surname       string `json:"cognome"`
	BirthDate     string `json:"data_nascita"`  // DD/MM/YYYY，无法解析时为清理后的原文
	BirthPlace    string `json:"luogo_nascita"`
	Nationality   string `json:"nazionalita"`
	Sex           string `json:"sesso"` // F/M 或清理后的原文
	MaritalStatus string `json:"stato_civile"`
}

// EducationEntry 教育经历条目
// 日期为ISO YYYY-MM-DD或空字符串，永不为null
type EducationEntry struct {
	Title       string `json:"titolo_studio"`
	Institution string `json:"istituto"`
	City        string `json:"citta"`
	Country     string `json:"paese"`
	StartDate   string `json:"data_inizio"`
	EndDate     string `json:"data_fine"`
	Grade       string `json:"voto"`
	Description string `json:"descrizione"`
	Thesis      string `json:"tesi"`
}

// ExperienceEntry 工作经历条目
type ExperienceEntry struct {
	Position         string   `json:"posizione"`
	Company          string   `json:"azienda"`
	City             string   `json:"citta"`
	Country          string   `json:"paese"`
	StartDate        string   `json:"data_inizio"`
	EndDate          string   `json:"data_fine"`
	Description      string   `json:"descrizione"`
	Responsibilities []string `json:"responsabilita"`
	Achievements     []string `json:"risultati_ottenuti"`
}

// TechnicalSkills 技术技能。除AltreCompetenze外的分类保持为空：
// 分类推断需要硬编码词表，本设计明确避免（见extract逻辑）
type TechnicalSkills struct {
	ProgrammingLanguages []string `json:"linguaggi_programmazione"`
	Frameworks           []string `json:"framework"`
	Databases            []string `json:"database"`
	Tools                []string `json:"strumenti"`
	Methodologies        []string `json:"metodologie"`
	Other                []string `json:"altre_competenze"`
}

// LanguageSkill 语言能力（CEFR等级）
type LanguageSkill struct {
	Language       string   `json:"lingua"`
	WrittenLevel   string   `json:"livello_scritto"`
	SpokenLevel    string   `json:"livello_parlato"`
	Certifications []string `json:"certificazioni"`
}

// Certification 证书条目
type Certification struct {
	Name      string `json:"nome"`
	Issuer    string `json:"ente_certificatore"`
	IssuedAt  string `json:"data_ottenimento"`
	ExpiresAt string `json:"data_scadenza"`
	Number    string `json:"numero_certificato"`
}

// Project 项目条目
type Project struct {
	Name         string   `json:"nome"`
	Description  string   `json:"descrizione"`
	Role         string   `json:"ruolo"`
	Technologies []string `json:"tecnologie"`
	Link         string   `json:"link"`
}

// Publication 出版物条目
type Publication struct {
	Title   string   `json:"titolo"`
	Authors []string `json:"autori"`
	Date    string   `json:"data"`
	Venue   string   `json:"rivista_conferenza"`
	Link    string   `json:"link"`
}

// Availability 求职可用性偏好
type Availability struct {
	Travel            string   `json:"trasferte"`
	Relocation        string   `json:"trasferimento"`
	PreferredContract []string `json:"tipo_contratto_preferito"`
}

// Meta 解析元数据
type Meta struct {
	SectionTitles []string `json:"section_titles"`
}

// InternalRecord 解析核心的输出结构
// 每次解析调用构造一次，构造后不再修改，交给schema归一化层消费
type InternalRecord struct {
	Personal       PersonalInfo      `json:"anagrafica"`
	Contacts       ContactInfo       `json:"contatti"`
	Education      []EducationEntry  `json:"istruzione"`
	Experience     []ExperienceEntry `json:"esperienze_lavorative"`
	Skills         TechnicalSkills   `json:"competenze_tecniche"`
	Languages      []LanguageSkill   `json:"competenze_linguistiche"`
	SoftSkills     []string          `json:"competenze_trasversali"`
	Certifications []Certification   `json:"certificazioni"`
	Projects       []Project         `json:"progetti"`
	Publications   []Publication     `json:"pubblicazioni"`
	Interests      []string          `json:"interessi"`
	Licences       []string          `json:"patente"`
	Privacy        string            `json:"autorizzazione_trattamento_dati"`
	Availability   Availability      `json:"disponibilita"`
	Meta           *Meta             `json:"_meta,omitempty"`
}

// EmptyEducationEntry 返回全空的教育经历占位条目
// schema消费方要求每个列表至少有一个条目
func EmptyEducationEntry() EducationEntry {
	return EducationEntry{}
}

// EmptyExperienceEntry 返回全空的工作经历占位条目
func EmptyExperienceEntry() ExperienceEntry {
	return ExperienceEntry{Responsibilities: []string{}, Achievements: []string{}}
}

// EmptyLanguageSkill 返回全空的语言能力占位条目
func EmptyLanguageSkill() LanguageSkill {
	return LanguageSkill{Certifications: []string{}}
}
