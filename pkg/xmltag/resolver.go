// Package xmltag localiza elementos XML por nombre local, sin importar el prefijo
// o el namespace con que vengan declarados (nfe:det, det, <det xmlns="...">).
package xmltag

import (
	"sort"
	"strings"

	"github.com/beevik/etree"
)

// FindAll devuelve todos los descendientes de node cuyo nombre local es localName,
// en orden de documento. Nunca falla: node nil o nombre inválido devuelven nil.
func FindAll(node *etree.Element, localName string) []*etree.Element {
	if node == nil || localName == "" {
		return nil
	}
	if matches := findByPath(node, localName); len(matches) > 0 {
		return inDocumentOrder(node, matches)
	}
	return scan(node, localName, nil)
}

// FindFirst devuelve el primer descendiente con el nombre local indicado o nil.
func FindFirst(node *etree.Element, localName string) *etree.Element {
	all := FindAll(node, localName)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// FindFirstText devuelve el contenido de texto del primer descendiente con el nombre local
// indicado, o "" si no existe.
func FindFirstText(node *etree.Element, localName string) string {
	el := FindFirst(node, localName)
	if el == nil {
		return ""
	}
	return TextContent(el)
}

// TextContent concatena todo el texto (incluido CDATA) de el y sus descendientes.
func TextContent(el *etree.Element) string {
	if el == nil {
		return ""
	}
	var b strings.Builder
	writeText(&b, el)
	return b.String()
}

func writeText(b *strings.Builder, el *etree.Element) {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			writeText(b, t)
		}
	}
}

// findByPath usa el selector de etree ".//tag", que ignora el namespace cuando el
// nombre no lleva prefijo. Un nombre que no compila como path se trata como "sin resultados".
func findByPath(node *etree.Element, localName string) []*etree.Element {
	p, err := etree.CompilePath(".//" + localName)
	if err != nil {
		return nil
	}
	var out []*etree.Element
	for _, el := range node.FindElementsPath(p) {
		if el != node && el.Tag == localName {
			out = append(out, el)
		}
	}
	return out
}

// scan recorre el árbol en profundidad comparando el nombre local de cada elemento.
func scan(node *etree.Element, localName string, acc []*etree.Element) []*etree.Element {
	for _, child := range node.ChildElements() {
		if child.Tag == localName {
			acc = append(acc, child)
		}
		acc = scan(child, localName, acc)
	}
	return acc
}

// inDocumentOrder ordena matches según su posición en un recorrido en profundidad de node;
// el selector de descendientes de etree no garantiza ese orden.
func inDocumentOrder(node *etree.Element, matches []*etree.Element) []*etree.Element {
	if len(matches) < 2 {
		return matches
	}
	pos := make(map[*etree.Element]int)
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, c := range e.ChildElements() {
			pos[c] = len(pos)
			walk(c)
		}
	}
	walk(node)

	seen := make(map[*etree.Element]struct{}, len(matches))
	out := make([]*etree.Element, 0, len(matches))
	for _, m := range matches {
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return pos[out[i]] < pos[out[j]] })
	return out
}
