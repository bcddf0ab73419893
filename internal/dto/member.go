package dto

// ImportMemberResponse 名册导入结果
type ImportMemberResponse struct {
	Imported int                 `json:"imported"`
	Failed   int                 `json:"failed"`
	Errors   []ImportMemberError `json:"errors,omitempty"`
}

// ImportMemberError 单行导入失败详情
type ImportMemberError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}
