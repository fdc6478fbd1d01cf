package goquery

import (
	"regexp"

	"github.com/fwojciec/repometa"
)

// Research institutes, federal institutes and private universities.
var otherOverrides = []override{
	{
		name: "fiocruz", hosts: []string{"arca.fiocruz.br"},
		id:      identity("FIOCRUZ", "Fundação Oswaldo Cruz"),
		family:  repometa.FamilySPA,
		program: chain(spaKeys("dc.subject.program", "fiocruz.program"), ProgramFunc(SPAProgram)),
		who: unitsBy(ProgramFunc(unitText),
			unit{"Escola Nacional de Saúde Pública", identity("ENSP/FIOCRUZ", "Fundação Oswaldo Cruz - Escola Nacional de Saúde Pública Sergio Arouca")},
			unit{"Instituto Oswaldo Cruz", identity("IOC/FIOCRUZ", "Fundação Oswaldo Cruz - Instituto Oswaldo Cruz")},
			unit{"Instituto Aggeu Magalhães", identity("IAM/FIOCRUZ", "Fundação Oswaldo Cruz - Instituto Aggeu Magalhães")},
			unit{"Instituto René Rachou", identity("IRR/FIOCRUZ", "Fundação Oswaldo Cruz - Instituto René Rachou")},
			unit{"Instituto Gonçalo Moniz", identity("IGM/FIOCRUZ", "Fundação Oswaldo Cruz - Instituto Gonçalo Moniz")},
			unit{"Instituto Leônidas e Maria Deane", identity("ILMD/FIOCRUZ", "Fundação Oswaldo Cruz - Instituto Leônidas e Maria Deane")},
			unit{"Instituto Carlos Chagas", identity("ICC/FIOCRUZ", "Fundação Oswaldo Cruz - Instituto Carlos Chagas")},
			unit{"Instituto Nacional de Infectologia", identity("INI/FIOCRUZ", "Fundação Oswaldo Cruz - Instituto Nacional de Infectologia Evandro Chagas")},
		),
	},
	{
		name: "inpe", hosts: []string{"mtc-m21b.sid.inpe.br", "urlib.net"},
		id:      identity("INPE", "Instituto Nacional de Pesquisas Espaciais"),
		family:  repometa.FamilyGeneric,
		program: chain(byLabel("Programa", "Curso", "Course"), ProgramFunc(GenericProgram)),
		pdf:     pdfChain(linkPattern(regexp.MustCompile(`(?i)/doc/publicacao\.pdf$`)), PDFFunc(GenericPDF)),
	},
	{
		name: "ita", hosts: []string{"bdita.bibl.ita.br"},
		id:      identity("ITA", "Instituto Tecnológico de Aeronáutica"),
		family:  repometa.FamilyGeneric,
		program: chain(byLabel("Curso", "Programa", "Área"), ProgramFunc(GenericProgram)),
	},
	{
		name: "inpa", hosts: []string{"repositorio.inpa.gov.br"},
		id:      identity("INPA", "Instituto Nacional de Pesquisas da Amazônia"),
		family:  repometa.FamilyClassic,
		program: chain(byField("dc.publisher.program"), fromNote("dc.description"), ProgramFunc(ClassicProgram)),
	},
	{
		name: "impa", hosts: []string{"impa.br/wp-content", "impa.br/ensino"},
		id:      identity("IMPA", "Instituto de Matemática Pura e Aplicada"),
		family:  repometa.FamilyGeneric,
		program: chain(bySelector(".programa", ".course-name"), ProgramFunc(GenericProgram)),
	},
	{
		name: "embrapa", hosts: []string{"alice.cnptia.embrapa.br", "ainfo.cnptia.embrapa.br"},
		id:      identity("EMBRAPA", "Empresa Brasileira de Pesquisa Agropecuária"),
		family:  repometa.FamilyClassic,
		program: chain(fromNote("dc.description", "dc.description.notes"), ProgramFunc(ClassicProgram)),
	},
	{
		name: "ibict", hosts: []string{"ridi.ibict.br"},
		id:      identity("IBICT", "Instituto Brasileiro de Informação em Ciência e Tecnologia"),
		family:  repometa.FamilyClassic,
		program: chain(fromNote("dc.description"), crumbAt(-1), ProgramFunc(ClassicProgram)),
	},
	{
		name: "ifsp", hosts: []string{"repositorio.ifsp.edu.br"},
		id:      identity("IFSP", "Instituto Federal de São Paulo"),
		family:  repometa.FamilySPA,
		program: chain(spaKeys("dc.publisher.program", "ifsp.curso"), ProgramFunc(SPAProgram)),
	},
	{
		name: "ifg", hosts: []string{"repositorio.ifg.edu.br"},
		id:      identity("IFG", "Instituto Federal de Goiás"),
		family:  repometa.FamilyClassic,
		program: chain(byLabel("Programa", "Curso"), ProgramFunc(ClassicProgram)),
	},
	{
		name: "ifba", hosts: []string{"repositorio.ifba.edu.br"},
		id:      identity("IFBA", "Instituto Federal da Bahia"),
		family:  repometa.FamilyClassic,
		program: chain(crumbAt(-1), ProgramFunc(ClassicProgram)),
	},
	{
		name: "cefetmg", hosts: []string{"repositorio.cefetmg.br"},
		id:      identity("CEFET-MG", "Centro Federal de Educação Tecnológica de Minas Gerais"),
		family:  repometa.FamilySPA,
		program: chain(spaKeys("dc.publisher.program", "dc.publisher.department"), ProgramFunc(SPAProgram)),
	},
	{
		name: "cefetrj", hosts: []string{"dippg.cefet-rj.br"},
		id:      identity("CEFET/RJ", "Centro Federal de Educação Tecnológica Celso Suckow da Fonseca"),
		family:  repometa.FamilyGeneric,
		program: chain(bySelector("#programa", ".pos-programa"), ProgramFunc(GenericProgram)),
	},
	{
		name: "pucsp", hosts: []string{"repositorio.pucsp.br", "tede2.pucsp.br"},
		id:      identity("PUC-SP", "Pontifícia Universidade Católica de São Paulo"),
		family:  repometa.FamilyClassic,
		program: chain(byLabel("Programa"), ProgramFunc(ClassicProgram)),
		pdf:     pdfChain(linkPattern(regexp.MustCompile(`(?i)/jspui/bitstream/handle/\d+/\d+/.*\.pdf`)), PDFFunc(ClassicPDF)),
	},
	{
		name: "pucrio", hosts: []string{"maxwell.vrac.puc-rio.br"},
		id:      identity("PUC-Rio", "Pontifícia Universidade Católica do Rio de Janeiro"),
		family:  repometa.FamilyGeneric,
		program: chain(byLabel("Departamento", "Programa"), ProgramFunc(GenericProgram)),
		pdf:     pdfChain(linkPattern(regexp.MustCompile(`(?i)/\d+/\d+_\d+\.pdf$`)), PDFFunc(GenericPDF)),
	},
	{
		name: "pucrs", hosts: []string{"repositorio.pucrs.br", "tede2.pucrs.br"},
		id:      identity("PUCRS", "Pontifícia Universidade Católica do Rio Grande do Sul"),
		family:  repometa.FamilyClassic,
		program: chain(byLabel("Programa"), ProgramFunc(ClassicProgram)),
	},
	{
		name: "pucpr", hosts: []string{"archivum.grupomarista.org.br"},
		id:      identity("PUCPR", "Pontifícia Universidade Católica do Paraná"),
		family:  repometa.FamilyClassic,
		program: chain(byLabel("Programa"), crumbAt(-1), ProgramFunc(ClassicProgram)),
	},
	{
		name: "pucminas", hosts: []string{"bib.pucminas.br"},
		id:      identity("PUC Minas", "Pontifícia Universidade Católica de Minas Gerais"),
		family:  repometa.FamilyGeneric,
		program: chain(byLabel("Programa", "Curso"), ProgramFunc(GenericProgram)),
		pdf:     pdfChain(linkPattern(regexp.MustCompile(`(?i)/teses/[^/]+\.pdf$`)), PDFFunc(GenericPDF)),
	},
	{
		name: "pucgoias", hosts: []string{"tede2.pucgoias.edu.br"},
		id:      identity("PUC Goiás", "Pontifícia Universidade Católica de Goiás"),
		family:  repometa.FamilyClassic,
		program: chain(byLabel("Programa"), ProgramFunc(ClassicProgram)),
	},
	{
		name: "mackenzie", hosts: []string{"dspace.mackenzie.br", "adelpha-api.mackenzie.br"},
		id:      identity("MACKENZIE", "Universidade Presbiteriana Mackenzie"),
		family:  repometa.FamilySPA,
		program: chain(spaKeys("dc.publisher.program", "mackenzie.program"), ProgramFunc(SPAProgram)),
	},
	{
		name: "fgv", hosts: []string{"repositorio.fgv.br", "bibliotecadigital.fgv.br"},
		id:      identity("FGV", "Fundação Getulio Vargas"),
		family:  repometa.FamilySPA,
		program: chain(spaKeys("dc.publisher.program", "dc.publisher.department"), ProgramFunc(SPAProgram)),
		who: unitsBy(ProgramFunc(unitText),
			unit{"EAESP", identity("FGV EAESP", "Fundação Getulio Vargas - Escola de Administração de Empresas de São Paulo")},
			unit{"EBAPE", identity("FGV EBAPE", "Fundação Getulio Vargas - Escola Brasileira de Administração Pública e de Empresas")},
			unit{"EPGE", identity("FGV EPGE", "Fundação Getulio Vargas - Escola Brasileira de Economia e Finanças")},
			unit{"EESP", identity("FGV EESP", "Fundação Getulio Vargas - Escola de Economia de São Paulo")},
			unit{"Direito Rio", identity("FGV Direito Rio", "Fundação Getulio Vargas - Escola de Direito do Rio de Janeiro")},
			unit{"Direito SP", identity("FGV Direito SP", "Fundação Getulio Vargas - Escola de Direito de São Paulo")},
			unit{"CPDOC", identity("FGV CPDOC", "Fundação Getulio Vargas - Escola de Ciências Sociais")},
		),
	},
	{
		name: "unisinos", hosts: []string{"repositorio.jesuita.org.br"},
		id:      identity("UNISINOS", "Universidade do Vale do Rio dos Sinos"),
		family:  repometa.FamilyClassic,
		program: chain(byField("dc.publisher.program"), byLabel("Programa"), ProgramFunc(ClassicProgram)),
	},
	{
		name: "ucs", hosts: []string{"repositorio.ucs.br"},
		id:      identity("UCS", "Universidade de Caxias do Sul"),
		family:  repometa.FamilyClassic,
		program: chain(fromNote("dc.description"), ProgramFunc(ClassicProgram)),
	},
	{
		name: "univali", hosts: []string{"siaiap39.univali.br"},
		id:      identity("UNIVALI", "Universidade do Vale do Itajaí"),
		family:  repometa.FamilyGeneric,
		program: chain(bySelector(".programa-nome"), byLabel("Programa"), ProgramFunc(GenericProgram)),
	},
	{
		name: "unifor", hosts: []string{"uol.unifor.br/oul/ObraBdtdSiteTrazer"},
		id:      identity("UNIFOR", "Universidade de Fortaleza"),
		family:  repometa.FamilyGeneric,
		program: chain(byLabel("Programa", "Curso"), ProgramFunc(GenericProgram)),
		pdf:     pdfChain(linkPattern(regexp.MustCompile(`(?i)ObraBdtdSiteTrazer.*\.pdf`)), PDFFunc(GenericPDF)),
	},
	{
		name: "upf", hosts: []string{"tede.upf.br"},
		id:      identity("UPF", "Universidade de Passo Fundo"),
		family:  repometa.FamilyClassic,
		program: chain(byLabel("Programa"), ProgramFunc(ClassicProgram)),
	},
	{
		name: "unoeste", hosts: []string{"bdtd.unoeste.br"},
		id:      identity("UNOESTE", "Universidade do Oeste Paulista"),
		family:  repometa.FamilyClassic,
		program: chain(byLabel("Programa"), crumbAt(-1), ProgramFunc(ClassicProgram)),
	},
}
