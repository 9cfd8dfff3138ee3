package engine_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Neeraj281998/JavaMem-Java-Memory-Visualizer/engine"
	"github.com/Neeraj281998/JavaMem-Java-Memory-Visualizer/heap"
	"github.com/Neeraj281998/JavaMem-Java-Memory-Visualizer/stmt"
)

// values projects a snapshot to its rendered element values, in display
// order.
func values(s engine.Snapshot) []string {
	var out []string
	for _, it := range s.Items {
		out = append(out, it.Value)
	}
	return out
}

func keys(s engine.Snapshot) []string {
	var out []string
	for _, it := range s.Items {
		out = append(out, it.Key)
	}
	return out
}

var _ = Describe("Structures", func() {
	var eng *engine.Engine

	BeforeEach(func() {
		eng = engine.New(engine.WithSeed(7))
	})

	describe := func(name string) engine.Snapshot {
		snap, err := eng.Describe(refOf(eng, name))
		ExpectWithOffset(1, err).To(BeNil())
		return snap
	}

	Describe("ArrayList", func() {
		It("should append on add and drop the last element on remove", func() {
			src := "ArrayList<Integer> al = new ArrayList<>();\n" +
				"al.add(1);\nal.add(2);\nal.add(3);\nal.remove();"
			Expect(execute(eng, src)).To(BeEmpty())

			Expect(values(describe("al"))).To(Equal([]string{"1", "2"}))
		})

		It("should reject remove with an argument", func() {
			src := "ArrayList<Integer> al = new ArrayList<>();\n" +
				"al.add(1);\nal.remove(1);"
			errs := execute(eng, src)

			Expect(errs).To(HaveLen(1))
			var sem *engine.SemanticError
			Expect(errors.As(errs[0], &sem)).To(BeTrue())
			Expect(describe("al").Size).To(Equal(1))
		})

		It("should report remove on empty and stay at size 0", func() {
			errs := execute(eng, "ArrayList<Integer> al = new ArrayList<>();\nal.remove();")

			Expect(errs).To(HaveLen(1))
			var empty *engine.EmptyStructureError
			Expect(errors.As(errs[0], &empty)).To(BeTrue())
			Expect(describe("al").Size).To(Equal(0))
		})
	})

	Describe("Stack", func() {
		It("should describe the top first", func() {
			src := "Stack<Integer> s = new Stack<>();\n" +
				"s.push(1);\ns.push(2);\ns.push(3);"
			Expect(execute(eng, src)).To(BeEmpty())

			Expect(values(describe("s"))).To(Equal([]string{"3", "2", "1"}))
		})

		It("should pop in LIFO order", func() {
			src := "Stack<Integer> s = new Stack<>();\n" +
				"s.push(1);\ns.push(2);\ns.pop();"
			Expect(execute(eng, src)).To(BeEmpty())

			Expect(values(describe("s"))).To(Equal([]string{"1"}))
		})
	})

	Describe("LinkedList", func() {
		It("should remove the tail when no argument is given", func() {
			src := "LinkedList<Integer> ll = new LinkedList<>();\n" +
				"ll.add(10);\nll.add(20);\nll.add(30);\nll.remove();"
			Expect(execute(eng, src)).To(BeEmpty())

			Expect(values(describe("ll"))).To(Equal([]string{"10", "20"}))
		})

		It("should report removal of a missing value", func() {
			src := "LinkedList<Integer> ll = new LinkedList<>();\n" +
				"ll.add(10);\nll.remove(99);"
			errs := execute(eng, src)

			Expect(errs).To(HaveLen(1))
			Expect(errs[0].Error()).To(ContainSubstring("no element"))
		})

		It("should key items by node id", func() {
			src := "LinkedList<Integer> ll = new LinkedList<>();\nll.add(10);"
			Expect(execute(eng, src)).To(BeEmpty())

			snap := describe("ll")
			Expect(snap.Items).To(HaveLen(1))
			Expect(snap.Items[0].Key).NotTo(BeEmpty())
		})
	})

	Describe("maps", func() {
		It("should overwrite on a duplicate put", func() {
			src := "HashMap<String, Integer> m = new HashMap<>();\n" +
				`m.put("k", 1);` + "\n" + `m.put("k", 2);`
			Expect(execute(eng, src)).To(BeEmpty())

			snap := describe("m")
			Expect(snap.Size).To(Equal(1))
			Expect(snap.Items[0].Value).To(Equal("2"))
		})

		It("should treat removal of an absent key as a no-op", func() {
			src := "HashMap<String, Integer> m = new HashMap<>();\n" +
				`m.put("k", 1);` + "\n" + `m.remove("other");`
			Expect(execute(eng, src)).To(BeEmpty())

			Expect(describe("m").Size).To(Equal(1))
		})

		It("should assign HashMap entries to display buckets", func() {
			src := "HashMap<String, Integer> m = new HashMap<>();\n" +
				`m.put("a", 1);` + "\n" + `m.put("b", 2);` + "\n" + `m.put("c", 3);`
			Expect(execute(eng, src)).To(BeEmpty())

			snap := describe("m")
			last := -1
			for _, it := range snap.Items {
				Expect(it.Bucket).To(BeNumerically(">=", 0))
				Expect(it.Bucket).To(BeNumerically("<", 8))
				Expect(it.Bucket).To(BeNumerically(">=", last))
				last = it.Bucket
			}
		})

		It("should describe TreeMap entries sorted by key", func() {
			src := "TreeMap<String, Integer> m = new TreeMap<>();\n" +
				`m.put("b", 2);` + "\n" + `m.put("a", 1);` + "\n" + `m.put("c", 3);`
			Expect(execute(eng, src)).To(BeEmpty())

			Expect(keys(describe("m"))).To(Equal([]string{`"a"`, `"b"`, `"c"`}))
		})

		It("should describe LinkedHashMap entries in insertion order", func() {
			src := "LinkedHashMap<String, Integer> m = new LinkedHashMap<>();\n" +
				`m.put("b", 2);` + "\n" + `m.put("a", 1);` + "\n" + `m.put("c", 3);`
			Expect(execute(eng, src)).To(BeEmpty())

			snap := describe("m")
			Expect(keys(snap)).To(Equal([]string{`"b"`, `"a"`, `"c"`}))
			Expect(snap.Items[0].Bucket).To(Equal(-1))
		})
	})

	Describe("sets", func() {
		It("should reject a duplicate element and keep the set unchanged", func() {
			src := "HashSet<Integer> s = new HashSet<>();\n" +
				"s.add(1);\ns.add(1);"
			errs := execute(eng, src)

			Expect(errs).To(HaveLen(1))
			var sem *engine.SemanticError
			Expect(errors.As(errs[0], &sem)).To(BeTrue())
			Expect(describe("s").Size).To(Equal(1))
		})

		It("should treat removal of an absent element as a no-op", func() {
			src := "HashSet<Integer> s = new HashSet<>();\n" +
				"s.add(1);\ns.remove(2);"
			Expect(execute(eng, src)).To(BeEmpty())

			Expect(describe("s").Size).To(Equal(1))
		})

		It("should describe TreeSet elements in sorted order", func() {
			src := "TreeSet<Integer> s = new TreeSet<>();\n" +
				"s.add(3);\ns.add(1);\ns.add(2);"
			Expect(execute(eng, src)).To(BeEmpty())

			Expect(values(describe("s"))).To(Equal([]string{"1", "2", "3"}))
		})
	})

	Describe("BST", func() {
		It("should reject a duplicate key and keep the tree unchanged", func() {
			src := "BST tree = new BST();\n" +
				"tree.insert(50);\ntree.insert(30);\ntree.insert(70);\ntree.insert(30);"
			errs := execute(eng, src)

			Expect(errs).To(HaveLen(1))
			Expect(errs[0].Error()).To(ContainSubstring("duplicate key"))
			Expect(describe("tree").Size).To(Equal(3))
		})

		It("should reject a non-numeric key", func() {
			errs := execute(eng, "BST tree = new BST();\n"+`tree.insert("x");`)

			Expect(errs).To(HaveLen(1))
			Expect(errs[0].Error()).To(ContainSubstring("numeric"))
		})

		It("should stay sorted after a two-child delete", func() {
			src := "BST tree = new BST();\n" +
				"tree.insert(50);\ntree.insert(30);\ntree.insert(70);\n" +
				"tree.insert(20);\ntree.insert(40);\ntree.insert(60);\ntree.insert(80);\n" +
				"tree.delete(50);"
			Expect(execute(eng, src)).To(BeEmpty())

			Expect(values(describe("tree"))).To(Equal(
				[]string{"20", "30", "40", "60", "70", "80"}))
		})

		It("should collect the node detached by a leaf delete", func() {
			src := "BST tree = new BST();\n" +
				"tree.insert(50);\ntree.insert(30);\ntree.delete(30);"
			Expect(execute(eng, src)).To(BeEmpty())

			Expect(values(describe("tree"))).To(Equal([]string{"50"}))
			nodes := 0
			for _, id := range eng.Model().ObjectIDs() {
				obj, err := eng.Model().Object(id)
				Expect(err).To(BeNil())
				if obj.Kind == heap.KindBSTNode {
					nodes++
				}
			}
			Expect(nodes).To(Equal(1))
		})

		It("should report deletion of a missing key", func() {
			src := "BST tree = new BST();\ntree.insert(50);\ntree.delete(99);"
			errs := execute(eng, src)

			Expect(errs).To(HaveLen(1))
			Expect(errs[0].Error()).To(ContainSubstring("not found"))
		})

		It("should report deletion from an empty tree", func() {
			errs := execute(eng, "BST tree = new BST();\ntree.delete(1);")

			Expect(errs).To(HaveLen(1))
			var empty *engine.EmptyStructureError
			Expect(errors.As(errs[0], &empty)).To(BeTrue())
		})
	})

	Describe("arrays", func() {
		It("should set a cell in bounds", func() {
			Expect(execute(eng, "int[] nums = new int[3];\nnums.set(1, 5);")).To(BeEmpty())

			Expect(values(describe("nums"))).To(Equal([]string{"0", "5", "0"}))
		})

		It("should reject an out-of-bounds index and leave the array unchanged", func() {
			errs := execute(eng, "int[] nums = new int[3];\nnums.set(5, 1);")

			Expect(errs).To(HaveLen(1))
			Expect(errs[0].Error()).To(ContainSubstring("out of bounds"))
			Expect(values(describe("nums"))).To(Equal([]string{"0", "0", "0"}))
		})

		It("should reset a cell to the element type's zero", func() {
			src := "int[] nums = {1, 2, 3};\nnums.reset(1);"
			Expect(execute(eng, src)).To(BeEmpty())

			Expect(values(describe("nums"))).To(Equal([]string{"1", "0", "3"}))
		})

		It("should reject a value of the wrong element type", func() {
			errs := execute(eng, "int[] nums = new int[2];\n"+`nums.set(0, "x");`)

			Expect(errs).To(HaveLen(1))
			Expect(errs[0].Error()).To(ContainSubstring("not assignable"))
		})

		It("should intern String array cells through the pool", func() {
			Expect(execute(eng, `String[] names = {"a", "b"};`)).To(BeEmpty())

			Expect(eng.Model().NumPoolEntries()).To(Equal(2))
			obj, err := eng.Model().Object(refOf(eng, "names"))
			Expect(err).To(BeNil())
			Expect(obj.Cells[0].IsRef()).To(BeTrue())
			Expect(eng.Model().PoolRefCount(obj.Cells[0].Ref)).To(Equal(1))
		})

		It("should not allocate an array when an initializer cell is invalid", func() {
			bad := []stmt.Statement{{
				Op:        stmt.OpDeclareArray,
				Type:      stmt.TypeInt,
				Name:      "nums",
				Line:      1,
				ArrayLen:  1,
				ArrayInit: []stmt.Literal{{Kind: stmt.LitString, Str: "x"}},
			}}
			errs := eng.Run(bad)

			Expect(errs).To(HaveLen(1))
			Expect(eng.Model().NumObjects()).To(Equal(0))
			Expect(eng.Model().ActiveFrame().Lookup("nums")).To(BeNil())
		})

		It("should reset a String cell to null and reclaim the literal", func() {
			src := `String[] names = {"a", "b"};` + "\nnames.reset(0);"
			Expect(execute(eng, src)).To(BeEmpty())

			obj, err := eng.Model().Object(refOf(eng, "names"))
			Expect(err).To(BeNil())
			Expect(obj.Cells[0].Kind).To(Equal(heap.ValNull))
			// "a" lost its last referrer; Run drained its sweep.
			Expect(eng.Model().NumPoolEntries()).To(Equal(1))
		})
	})

	Describe("method/kind pairing", func() {
		It("should reject push on a non-Stack", func() {
			errs := execute(eng, "ArrayList<Integer> al = new ArrayList<>();\nal.push(1);")

			Expect(errs).To(HaveLen(1))
			Expect(errs[0].Error()).To(ContainSubstring("does not support"))
		})

		It("should reject add on a map", func() {
			errs := execute(eng, "HashMap<String, Integer> m = new HashMap<>();\nm.add(1);")

			Expect(errs).To(HaveLen(1))
			Expect(errs[0].Error()).To(ContainSubstring("does not support"))
		})

		It("should reject set on a non-array", func() {
			errs := execute(eng, "Stack<Integer> s = new Stack<>();\ns.set(0, 1);")

			Expect(errs).To(HaveLen(1))
			Expect(errs[0].Error()).To(ContainSubstring("does not support"))
		})
	})
})
